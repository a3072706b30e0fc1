package bot

import (
	"context"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type skillsInput struct {
	chatID   int64
	onFinish func(skills []string)
	skills   skillResolver
}

func newSkillsInput(chatID int64, skills skillResolver, onFinish func(skills []string)) *skillsInput {
	return &skillsInput{chatID: chatID, skills: skills, onFinish: onFinish}
}

func (a *skillsInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Enter required skills separated by commas, e.g. \"Go, PostgreSQL\". "+
		"A candidate needs at least one of them.\nSend \""+skipInput+"\" to skip.")
	msg.ReplyMarkup = keyboardWithExit()
	return msg
}

func (a *skillsInput) HandleInput(input string) botApi.Chattable {

	if strings.TrimSpace(input) == skipInput {
		a.onFinish(nil)
		return nil
	}

	names := lo.Uniq(lo.Compact(lo.Map(strings.Split(input, ","), func(name string, _ int) string {
		return strings.TrimSpace(name)
	})))
	if len(names) == 0 {
		return botApi.NewMessage(a.chatID, "Enter at least one skill.")
	}

	for _, name := range names {
		skill, err := a.skills.GetByName(context.Background(), name)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
			return botApi.NewMessage(a.chatID, "Internal error.")
		}
		if skill == nil {
			return botApi.NewMessage(a.chatID, "Unknown skill: "+name)
		}
	}

	a.onFinish(names)
	return nil
}
