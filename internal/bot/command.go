package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/logger"
	log "github.com/sirupsen/logrus"
)

type apiInterface interface {
	Send(chattable botApi.Chattable) (botApi.Message, error)
}

// command is a multi-step dialog. It owns the chat until it calls its finish
// callback.
type command interface {
	WithKeyboardOnFinalMessage(botApi.ReplyKeyboardMarkup)
	WithFinishCallback(func())
	Run()
	OnUserInput(input string)
}

// inputHandler asks for and validates one field of a dialog. HandleInput
// returns the reply to send, or nil once the field is accepted.
type inputHandler interface {
	InitMessage() botApi.Chattable
	HandleInput(input string) botApi.Chattable
}

func sendWithLogError(api apiInterface, chattable botApi.Chattable) (botApi.Message, error) {
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
	return msg, err
}
