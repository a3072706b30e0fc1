package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

var errorNoUserSearches = errors.New("user has no searches")

type searchInput struct {
	chatID       int64
	userSearches []models.SavedSearch
	onFinish     func(search *models.SavedSearch)
}

func newSearchInput(chatID int64, ownerID int64, searches savedSearchService,
	onFinish func(search *models.SavedSearch)) (*searchInput, error) {

	userSearches, err := searches.List(context.Background(), ownerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return nil, err
	}
	if len(userSearches) == 0 {
		return nil, errorNoUserSearches
	}
	return &searchInput{chatID: chatID, userSearches: userSearches, onFinish: onFinish}, nil
}

func (s *searchInput) InitMessage() botApi.Chattable {

	text := "Enter the search number:\n"
	text += searchesToText(s.userSearches)

	msg := botApi.NewMessage(s.chatID, text)
	msg.ReplyMarkup = keyboardWithExit()
	return msg
}

func (s *searchInput) HandleInput(input string) botApi.Chattable {

	number, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return botApi.NewMessage(s.chatID, "Enter a number!")
	}

	if number < 1 || number > len(s.userSearches) {
		return botApi.NewMessage(s.chatID, "There is no search with that number.")
	}

	s.onFinish(&s.userSearches[number-1])
	return nil
}

func searchesToText(searches []models.SavedSearch) (text string) {
	for i := 0; i < len(searches); i++ {
		text += strconv.Itoa(i+1) + ": " + searchToText(searches[i]) + "\n"
	}
	return text
}

func searchToText(search models.SavedSearch) string {

	text := fmt.Sprintf("\"%s\" (id %d", search.Name, search.ID)
	if search.IsActive {
		text += ", active)"
	} else {
		text += ", paused)"
	}

	if search.Query != "" {
		text += ", query \"" + search.Query + "\""
	}

	if len(search.Skills) > 0 {
		text += ", skills " + strings.Join(lo.Map(search.Skills, func(s models.Skill, _ int) string { return s.Name }), ", ")
	}

	if location := models.JoinLocation(search.LocationCity, search.LocationState, search.LocationCountry); location != "" {
		text += ", location \"" + location + "\""
	}

	if search.LastCheckedAt != nil {
		text += ", checked " + search.LastCheckedAt.Format("2006-01-02 15:04")
	} else {
		text += ", never checked"
	}
	return text
}
