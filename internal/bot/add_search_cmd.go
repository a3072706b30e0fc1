package bot

import (
	"context"
	"errors"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/services"
	log "github.com/sirupsen/logrus"
)

const addSearchCommandName = "Add saved search"

type addSearchCommand struct {
	api                  apiInterface
	chatID               int64
	ownerID              int64
	searches             savedSearchService
	inputHandlers        []inputHandler
	curHandlerIndex      int
	input                services.SavedSearchInput
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newAddSearchCommand(api apiInterface, chatID int64, ownerID int64, searches savedSearchService,
	skills skillResolver) *addSearchCommand {

	cmd := &addSearchCommand{api: api, chatID: chatID, ownerID: ownerID, searches: searches}

	name := newTextInput(chatID, "Enter a name for the search, e.g. \"Senior Go engineers\".", func(name string) {
		cmd.input.Name = name
		cmd.curHandlerIndex++
	})
	name.AddValidation(notEmpty)
	name.AddValidation(maxLength(100))

	query := newOptionalTextInput(chatID, "Enter keywords to look for in candidate profiles.", func(query string) {
		cmd.input.Query = query
		cmd.curHandlerIndex++
	})
	query.AddValidation(maxLength(200))

	skillNames := newSkillsInput(chatID, skills, func(skills []string) {
		cmd.input.Skills = skills
		cmd.curHandlerIndex++
	})

	location := newOptionalTextInput(chatID, "Enter the location as \"city, state, country\"; any part may be empty, "+
		"e.g. \"Atlanta, GA\" or \", , USA\".", func(location string) {
		cmd.input.City, cmd.input.State, cmd.input.Country = splitLocation(location)
		cmd.curHandlerIndex++
	})
	location.AddValidation(maxLength(300))

	cmd.inputHandlers = []inputHandler{name, query, skillNames, location}
	return cmd
}

func (c *addSearchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *addSearchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *addSearchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *addSearchCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[c.curHandlerIndex].HandleInput(input)

	handlerChanged := previousIndex != c.curHandlerIndex
	allHandlersFinished := c.curHandlerIndex >= len(c.inputHandlers)

	if !handlerChanged {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if !allHandlersFinished {
		_, _ = sendWithLogError(c.api, c.inputHandlers[c.curHandlerIndex].InitMessage())
		return
	}

	c.addSearch()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *addSearchCommand) addSearch() {

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	search, err := c.searches.Create(context.Background(), c.ownerID, c.input)
	switch {
	case errors.Is(err, services.ErrUnknownSkill):
		msg.Text = "Search was not saved: " + err.Error()
	case errors.Is(err, services.ErrNotRecruiter):
		msg.Text = "Only recruiter accounts can save searches."
	case err != nil:
		log.Errorf("failed to create saved search: %v", err)
		msg.Text = "Internal error!"
	default:
		msg.Text = "Search saved! " + searchToText(*search)
	}

	_, _ = sendWithLogError(c.api, msg)
}

func splitLocation(location string) (city, state, country string) {
	parts := strings.SplitN(location, ",", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
}
