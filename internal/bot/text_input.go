package bot

import (
	"strconv"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// skipInput is what the user sends to leave an optional field empty.
const skipInput = "-"

type validation struct {
	function     func(input string) bool
	errorMessage string
}

type textInput struct {
	chatID      int64
	initMessage string
	optional    bool
	onFinish    func(input string)
	validations []validation
}

func newTextInput(chatID int64, initMessage string, onFinish func(input string)) *textInput {
	return &textInput{chatID: chatID, initMessage: initMessage, onFinish: onFinish}
}

func newOptionalTextInput(chatID int64, initMessage string, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, initMessage+"\nSend \""+skipInput+"\" to skip.", onFinish)
	input.optional = true
	return input
}

func (a *textInput) AddValidation(validation validation) {
	a.validations = append(a.validations, validation)
}

func (a *textInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.initMessage)
	msg.ReplyMarkup = keyboardWithExit()
	return msg
}

func (a *textInput) HandleInput(input string) botApi.Chattable {

	input = strings.TrimSpace(input)
	if a.optional && input == skipInput {
		a.onFinish("")
		return nil
	}

	for _, _validation := range a.validations {
		if !_validation.function(input) {
			return botApi.NewMessage(a.chatID, _validation.errorMessage)
		}
	}

	a.onFinish(input)
	return nil
}

func maxLength(limit int) validation {
	return validation{
		function:     func(input string) bool { return len([]rune(input)) <= limit },
		errorMessage: "Too long, keep it under " + strconv.Itoa(limit) + " characters.",
	}
}

var notEmpty = validation{
	function:     func(input string) bool { return input != "" },
	errorMessage: "This field is required.",
}
