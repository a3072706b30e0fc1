package bot

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

const removeSearchCommandName = "Remove saved search"

type removeSearchCommand struct {
	api                  apiInterface
	chatID               int64
	ownerID              int64
	searches             savedSearchService
	input                inputHandler
	searchID             int
	searchInputFinished  bool
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newRemoveSearchCommand(api apiInterface, chatID int64, ownerID int64, searches savedSearchService) (*removeSearchCommand, error) {

	cmd := removeSearchCommand{api: api, chatID: chatID, ownerID: ownerID, searches: searches}
	input, err := newSearchInput(chatID, ownerID, searches, func(s *models.SavedSearch) {
		cmd.searchID = s.ID
		cmd.searchInputFinished = true
	})
	if err != nil {
		return nil, err
	}
	cmd.input = input
	return &cmd, nil
}

func (c *removeSearchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *removeSearchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *removeSearchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.input.InitMessage())
}

func (c *removeSearchCommand) OnUserInput(input string) {

	msg := c.input.HandleInput(input)

	if !c.searchInputFinished {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	c.removeSearch(c.searchID)

	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *removeSearchCommand) removeSearch(searchID int) {

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.searches.Delete(context.Background(), c.ownerID, searchID); err != nil {
		log.Errorf("failed to remove saved search %v: %v", searchID, err)
		msg.Text = "Internal error!"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Search removed together with its notifications."
	_, _ = sendWithLogError(c.api, msg)
}
