package bot

import (
	"context"
	"errors"
	"strconv"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const editSearchCommandName = "Edit saved search"

const (
	inputSearchStep = iota
	inputFieldToEditStep
	inputFieldValueStep
)

const (
	editNameField = iota
	editQueryField
	editSkillsField
	editLocationField
)

type editSearchCommand struct {
	api                  apiInterface
	chatID               int64
	ownerID              int64
	searches             savedSearchService
	skills               skillResolver
	curInput             inputHandler
	curStep              int
	search               *models.SavedSearch
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

// newEditSearchCommand lets the owner change one field at a time. The dialog
// keeps offering fields until the user goes back to the menu.
func newEditSearchCommand(api apiInterface, chatID int64, ownerID int64, searches savedSearchService,
	skills skillResolver) (*editSearchCommand, error) {

	cmd := &editSearchCommand{api: api, chatID: chatID, ownerID: ownerID, searches: searches, skills: skills,
		curStep: inputSearchStep}

	input, err := newSearchInput(chatID, ownerID, searches, func(s *models.SavedSearch) {
		cmd.search = s
		cmd.curStep = inputFieldToEditStep
	})
	if err != nil {
		return nil, err
	}
	cmd.curInput = input
	return cmd, nil
}

func (c *editSearchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *editSearchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *editSearchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.curInput.InitMessage())
}

func (c *editSearchCommand) OnUserInput(input string) {

	previousStep := c.curStep
	msg := c.curInput.HandleInput(input)

	if c.curStep == previousStep {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if c.curStep == inputFieldToEditStep {
		c.curInput = newFieldChoiceInput(c.chatID, func(input string) {
			field, _ := strconv.Atoi(input)
			c.curInput = c.fieldInput(field)
			c.curStep = inputFieldValueStep
		})
	}

	_, _ = sendWithLogError(c.api, c.curInput.InitMessage())
}

func (c *editSearchCommand) fieldInput(field int) inputHandler {

	input := inputOf(*c.search)

	switch field {
	case editNameField:
		name := newTextInput(c.chatID, "Enter a new name for the search.", func(name string) {
			input.Name = name
			c.editSearch(input)
		})
		name.AddValidation(notEmpty)
		name.AddValidation(maxLength(100))
		return name
	case editQueryField:
		query := newOptionalTextInput(c.chatID, "Enter new keywords.", func(query string) {
			input.Query = query
			c.editSearch(input)
		})
		query.AddValidation(maxLength(200))
		return query
	case editSkillsField:
		return newSkillsInput(c.chatID, c.skills, func(skills []string) {
			input.Skills = skills
			c.editSearch(input)
		})
	default:
		location := newOptionalTextInput(c.chatID, "Enter the new location as \"city, state, country\".", func(location string) {
			input.City, input.State, input.Country = splitLocation(location)
			c.editSearch(input)
		})
		location.AddValidation(maxLength(300))
		return location
	}
}

func (c *editSearchCommand) editSearch(input services.SavedSearchInput) {

	c.curStep = inputFieldToEditStep

	updated, err := c.searches.Update(context.Background(), c.ownerID, c.search.ID, input)
	switch {
	case errors.Is(err, services.ErrUnknownSkill):
		c.reply("Search was not updated: " + err.Error())
	case errors.Is(err, services.ErrSearchNotFound), errors.Is(err, services.ErrNotSearchOwner):
		c.reply("There is no search with that id.")
	case err != nil:
		log.Errorf("failed to update saved search %v: %v", c.search.ID, err)
		c.reply("Internal error!")
	default:
		c.search = updated
		c.reply("Search updated! " + searchToText(*updated))
	}
}

func (c *editSearchCommand) reply(text string) {
	_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, text))
}

func inputOf(search models.SavedSearch) services.SavedSearchInput {
	return services.SavedSearchInput{
		Name:    search.Name,
		Query:   search.Query,
		Skills:  lo.Map(search.Skills, func(skill models.Skill, _ int) string { return skill.Name }),
		City:    search.LocationCity,
		State:   search.LocationState,
		Country: search.LocationCountry,
	}
}

func newFieldChoiceInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "0 - change the name\n1 - change the keywords\n2 - change the skills\n"+
		"3 - change the location", onFinish)
	input.AddValidation(validation{
		function: func(input string) bool {
			digit, err := strconv.Atoi(input)
			return err == nil && digit >= editNameField && digit <= editLocationField
		},
		errorMessage: "Enter a number from 0 to 3",
	})
	return input
}
