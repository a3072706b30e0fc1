package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobbridge/internal/domain/events"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/services"
	log "github.com/sirupsen/logrus"
)

type Services struct {
	Searches      savedSearchService
	Checker       searchChecker
	Notifications notificationService
	Users         userRepository
	Links         chatLinker
	Skills        skillResolver
}

type savedSearchService interface {
	Create(ctx context.Context, ownerID int64, input services.SavedSearchInput) (*models.SavedSearch, error)
	Update(ctx context.Context, ownerID int64, searchID int, input services.SavedSearchInput) (*models.SavedSearch, error)
	Toggle(ctx context.Context, ownerID int64, searchID int) (*models.SavedSearch, error)
	Delete(ctx context.Context, ownerID int64, searchID int) error
	List(ctx context.Context, ownerID int64) ([]models.SavedSearch, error)
}

type searchChecker interface {
	CheckOwner(ctx context.Context, ownerID int64) ([]services.SearchCheck, error)
	MarkChecked(ctx context.Context, searchID int, at time.Time) error
}

type notificationService interface {
	Unread(ctx context.Context, ownerID int64) ([]models.MatchNotification, error)
	MarkRead(ctx context.Context, ownerID int64, ID int) error
}

type userRepository interface {
	GetByID(ctx context.Context, ID int64) (*models.User, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error)
}

type chatLinker interface {
	Link(ctx context.Context, token string, chatID int64) (*models.User, error)
}

type skillResolver interface {
	GetByName(ctx context.Context, name string) (*models.Skill, error)
}

type telegramApi interface {
	apiInterface
	GetUpdatesChan(config botApi.UpdateConfig) botApi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api          telegramApi
	bus          EventBus.Bus
	services     Services
	mu           sync.Mutex
	userContexts map[int64]*userContext
}

const backToMenuCommandName = "Back to menu"

var globalCommands = []string{addSearchCommandName, editSearchCommandName, removeSearchCommandName, backToMenuCommandName}

func NewBot(token string, bus EventBus.Bus, services Services) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	return newBot(api, bus, services)
}

func newBot(api telegramApi, bus EventBus.Bus, services Services) (*Bot, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if services.Searches == nil || services.Checker == nil || services.Notifications == nil ||
		services.Users == nil || services.Links == nil || services.Skills == nil {
		return nil, errors.New("bot services are incomplete")
	}

	createdBot := &Bot{api: api, bus: bus, services: services, userContexts: make(map[int64]*userContext)}

	err := bus.SubscribeAsync(events.MatchFoundTopic, createdBot.onMatchFound, false)
	if err != nil {
		return nil, err
	}
	err = bus.SubscribeAsync(events.SearchMatchesFoundTopic, createdBot.onSearchMatchesFound, false)
	if err != nil {
		return nil, err
	}
	return createdBot, nil
}

func (b *Bot) Run() {

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {

		if update.Message == nil {
			continue
		}

		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() {
			continue
		}

		go b.handleMessage(update.Message)
	}
}

// Stop ends polling and waits for pending match pushes.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	_ = b.bus.Unsubscribe(events.MatchFoundTopic, b.onMatchFound)
	_ = b.bus.Unsubscribe(events.SearchMatchesFoundTopic, b.onSearchMatchesFound)
	b.bus.WaitAsync()
}

func (b *Bot) handleMessage(message *botApi.Message) {

	b.mu.Lock()
	defer b.mu.Unlock()

	cmd := message.Command()
	if cmd == "" && slices.Contains(globalCommands, message.Text) {
		cmd = message.Text
	}

	if cmd != "" {
		b.handleCommand(message.Chat.ID, cmd, message.CommandArguments())
	} else {
		b.handleInput(message.Chat.ID, message.Text)
	}
}

func (b *Bot) handleCommand(chatID int64, command string, args string) {

	ctx := context.Background()

	if command == "start" {
		b.start(ctx, chatID, args)
		return
	}

	user, err := b.services.Users.GetByTelegramChatID(ctx, chatID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		b.reply(chatID, "Internal error!")
		return
	}
	if user == nil {
		b.reply(chatID, "This chat is not linked yet. Send /start <code> with the link code from your account.")
		return
	}

	var response botApi.Chattable

	switch command {
	case "searches":
		response = b.listSearches(ctx, chatID, user.ID)
	case "toggle":
		response = b.toggleSearch(ctx, chatID, user.ID, args)
	case "check":
		response = b.checkNow(ctx, chatID, user.ID)
	case "notifications":
		response = b.unreadNotifications(ctx, chatID, user.ID)
	case addSearchCommandName, editSearchCommandName, removeSearchCommandName:
		cmd, cmdErr := b.createCommand(command, chatID, user.ID)
		switch {
		case errors.Is(cmdErr, errorNoUserSearches):
			response = botApi.NewMessage(chatID, "You have no saved searches.")
		case cmdErr != nil:
			log.Errorf("couldn't create %s: %v", command, cmdErr)
			response = botApi.NewMessage(chatID, "Internal error!")
		default:
			b.contextOf(chatID).RunCommand(cmd, command)
		}
	case backToMenuCommandName:
		messageResponse := botApi.NewMessage(chatID, "Back in the main menu.")
		messageResponse.ReplyMarkup = defaultReplyKeyboard()
		response = messageResponse
		delete(b.userContexts, chatID)
	default:
		response = botApi.NewMessage(chatID, "Unknown command!")
	}

	if response == nil {
		return
	}

	_, _ = sendWithLogError(b.api, response)
}

func (b *Bot) createCommand(name string, chatID int64, ownerID int64) (command, error) {

	switch name {
	case addSearchCommandName:
		return newAddSearchCommand(b.api, chatID, ownerID, b.services.Searches, b.services.Skills), nil
	case editSearchCommandName:
		return newEditSearchCommand(b.api, chatID, ownerID, b.services.Searches, b.services.Skills)
	case removeSearchCommandName:
		return newRemoveSearchCommand(b.api, chatID, ownerID, b.services.Searches)
	default:
		return nil, fmt.Errorf("unknown command: %v", name)
	}
}

func (b *Bot) contextOf(chatID int64) *userContext {
	if b.userContexts[chatID] == nil {
		b.userContexts[chatID] = newUserContext(chatID)
	}
	return b.userContexts[chatID]
}

func (b *Bot) handleInput(chatID int64, input string) {

	ctx := b.userContexts[chatID]
	if ctx == nil || !ctx.HasRunningCommand() {
		b.reply(chatID, "Waiting for a command.")
		return
	}

	ctx.OnUserInput(input)
}

// start links the chat with the one-time code issued to the account holder.
func (b *Bot) start(ctx context.Context, chatID int64, token string) {

	token = strings.TrimSpace(token)
	if token == "" {
		b.reply(chatID, "Send /start <code> with the link code from your account to link this chat.")
		return
	}

	user, err := b.services.Links.Link(ctx, token, chatID)
	switch {
	case errors.Is(err, services.ErrInvalidLinkToken):
		b.reply(chatID, "This link code is invalid or already used.")
		return
	case errors.Is(err, services.ErrChatAlreadyLinked):
		b.reply(chatID, "This chat is already linked to an account.")
		return
	case err != nil:
		b.reply(chatID, "Internal error!")
		return
	}

	delete(b.userContexts, chatID)
	msg := botApi.NewMessage(chatID, "Hi, "+user.Username+"! Matches of your saved searches will be sent here.")
	msg.ReplyMarkup = defaultReplyKeyboard()
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) listSearches(ctx context.Context, chatID int64, ownerID int64) botApi.Chattable {

	searches, err := b.services.Searches.List(ctx, ownerID)
	if err != nil {
		return botApi.NewMessage(chatID, "Internal error!")
	}
	if len(searches) == 0 {
		return botApi.NewMessage(chatID, "You have no saved searches.")
	}
	return botApi.NewMessage(chatID, searchesToText(searches))
}

func (b *Bot) toggleSearch(ctx context.Context, chatID int64, ownerID int64, args string) botApi.Chattable {

	searchID, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return botApi.NewMessage(chatID, "Usage: /toggle <search id>")
	}

	search, err := b.services.Searches.Toggle(ctx, ownerID, searchID)
	switch {
	case errors.Is(err, services.ErrSearchNotFound), errors.Is(err, services.ErrNotSearchOwner):
		return botApi.NewMessage(chatID, "There is no search with that id.")
	case err != nil:
		return botApi.NewMessage(chatID, "Internal error!")
	}

	if search.IsActive {
		return botApi.NewMessage(chatID, "Search \""+search.Name+"\" resumed.")
	}
	return botApi.NewMessage(chatID, "Search \""+search.Name+"\" paused.")
}

func (b *Bot) checkNow(ctx context.Context, chatID int64, ownerID int64) botApi.Chattable {

	results, err := b.services.Checker.CheckOwner(ctx, ownerID)
	if err != nil {
		return botApi.NewMessage(chatID, "Internal error!")
	}
	if len(results) == 0 {
		return botApi.NewMessage(chatID, "You have no active saved searches.")
	}

	var text strings.Builder
	for _, result := range results {
		text.WriteString(matchesToText(result.Search, result.Profiles))
	}
	return botApi.NewMessage(chatID, text.String())
}

// unreadNotifications lists unread notifications and marks them read once
// delivered.
func (b *Bot) unreadNotifications(ctx context.Context, chatID int64, ownerID int64) botApi.Chattable {

	notifications, err := b.services.Notifications.Unread(ctx, ownerID)
	if err != nil {
		return botApi.NewMessage(chatID, "Internal error!")
	}
	if len(notifications) == 0 {
		return botApi.NewMessage(chatID, "No unread notifications.")
	}

	var text strings.Builder
	for _, notification := range notifications {
		text.WriteString(notification.CreatedAt.Format("2006-01-02 15:04") + " " + notification.Message + "\n")
	}

	if _, err = sendWithLogError(b.api, botApi.NewMessage(chatID, text.String())); err != nil {
		return nil
	}

	for _, notification := range notifications {
		if err = b.services.Notifications.MarkRead(ctx, ownerID, notification.ID); err != nil {
			log.Warnf("failed to mark notification %v read: %v", notification.ID, err)
		}
	}
	return nil
}

func (b *Bot) onMatchFound(event events.MatchFound) {

	owner, err := b.services.Users.GetByID(context.Background(), event.Search.OwnerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get search owner: %v", err)
		return
	}
	if owner == nil || owner.TelegramChatID == nil {
		return
	}

	_, _ = sendWithLogError(b.api, botApi.NewMessage(*owner.TelegramChatID, event.Notification.Message))
}

// onSearchMatchesFound delivers a scheduled check and only then stamps the
// search, so an owner without a linked chat still sees the matches on /check.
func (b *Bot) onSearchMatchesFound(event events.SearchMatchesFound) {

	ctx := context.Background()

	owner, err := b.services.Users.GetByID(ctx, event.Search.OwnerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get search owner: %v", err)
		return
	}
	if owner == nil || owner.TelegramChatID == nil {
		return
	}

	text := matchesToText(event.Search, event.Profiles)
	if _, err = sendWithLogError(b.api, botApi.NewMessage(*owner.TelegramChatID, text)); err != nil {
		return
	}

	if err = b.services.Checker.MarkChecked(ctx, event.Search.ID, event.CheckedAt); err != nil {
		log.Warnf("failed to mark search %v checked: %v", event.Search.ID, err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, text))
}

func matchesToText(search models.SavedSearch, profiles []models.Profile) string {
	var text strings.Builder
	_, _ = fmt.Fprintf(&text, "\"%s\": %d new matches\n", search.Name, len(profiles))
	for _, profile := range profiles {
		text.WriteString("  - " + profileToText(profile) + "\n")
	}
	return text.String()
}

func profileToText(profile models.Profile) string {
	text := profile.User.Username
	if profile.Headline != "" {
		text += ": " + profile.Headline
	}
	if location := profile.LocationQuery(); location != "" {
		text += " (" + location + ")"
	}
	return text
}

func defaultReplyKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(addSearchCommandName),
			botApi.NewKeyboardButton(editSearchCommandName),
			botApi.NewKeyboardButton(removeSearchCommandName),
		),
	)
}

func keyboardWithExit() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(backToMenuCommandName),
		),
	)
}
