package telegram

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopmate/internal/catalog"
	"shopmate/internal/config"
	"shopmate/internal/meal"
	"shopmate/internal/shopping"
	"shopmate/internal/store"
)

// Callback data is limited to 64 bytes, so item payloads are truncated and
// matched back by prefix.
const callbackTextLimit = 56

// Bot wraps the Telegram API around the shopping list store. Handlers run on
// HTTP goroutines, so all store access goes through the bot's mutex.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	mu    sync.Mutex
	store *store.Store
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, st *store.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, cfg: cfg, store: st}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// ApplyRemote feeds one synced collection into the store under the bot's
// lock. The sync loop in main calls this for every inbound update.
func (b *Bot) ApplyRemote(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.ApplyRemote(key, data)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.allowed(update.CallbackQuery.From.ID) {
			log.Printf("⚠️ Unauthorized callback from UserID: %d", update.CallbackQuery.From.ID)
			return
		}
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.allowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) allowed(userID int64) bool {
	return b.cfg.TelegramAllowUserID == 0 || b.cfg.TelegramAllowUserID == userID
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.sendMarkdown(msg.Chat.ID, helpText)
		case "list":
			b.sendList(msg.Chat.ID)
		case "meals":
			b.sendMeals(msg.Chat.ID)
		case "add":
			b.addItem(msg.Chat.ID, msg.CommandArguments())
		case "clearchecked":
			b.mu.Lock()
			b.store.ClearCheckedItems()
			b.mu.Unlock()
			b.sendList(msg.Chat.ID)
		default:
			b.sendMarkdown(msg.Chat.ID, "Unknown command. Try /help.")
		}
		return
	}

	// Plain text is a manual item, like typing into the add box.
	b.addItem(msg.Chat.ID, msg.Text)
}

const helpText = `🛒 *Shopping List Bot*

/list — show the shopping list, tap an item to check it off
/meals — pick meals for the week, tap to select
/add <item> — add an item to the list
/clearchecked — remove checked-off items

Any other message is added to the list as an item.`

func (b *Bot) addItem(chatID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		b.sendMarkdown(chatID, "Nothing to add.")
		return
	}

	b.mu.Lock()
	err := b.store.AddManualItem(text, "")
	b.mu.Unlock()
	if err != nil {
		b.sendMarkdown(chatID, fmt.Sprintf("❌ Could not add %q: %v", text, err))
		return
	}
	b.sendList(chatID)
}

func (b *Bot) sendList(chatID int64) {
	b.mu.Lock()
	items := b.store.List()
	aisles := b.store.Aisles()
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, formatListMarkdown(items, aisles))
	msg.ParseMode = "Markdown"
	if len(items) > 0 {
		msg.ReplyMarkup = listKeyboard(items)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send list: %v", err)
	}
}

func (b *Bot) sendMeals(chatID int64) {
	b.mu.Lock()
	meals := meal.Sorted(b.store.Meals())
	selected := b.store.SelectedMealIDs()
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, formatMealsMarkdown(meals, selected))
	msg.ParseMode = "Markdown"
	if len(meals) > 0 {
		msg.ReplyMarkup = mealsKeyboard(meals, selected)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send meals: %v", err)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	action, payload, ok := strings.Cut(query.Data, "|")
	if !ok {
		return
	}

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	switch action {
	case "item":
		b.toggleItem(query, payload)
	case "meal":
		b.toggleMeal(query, payload)
	}
}

func (b *Bot) toggleItem(query *tgbotapi.CallbackQuery, payload string) {
	b.mu.Lock()
	text, found := findItem(b.store.List(), payload)
	if found {
		if err := b.store.ToggleItemChecked(text); err != nil {
			log.Printf("Failed to toggle item %q: %v", text, err)
		}
	}
	items := b.store.List()
	aisles := b.store.Aisles()
	b.mu.Unlock()

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		query.Message.Chat.ID, query.Message.MessageID,
		formatListMarkdown(items, aisles), listKeyboard(items))
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) toggleMeal(query *tgbotapi.CallbackQuery, id string) {
	b.mu.Lock()
	if err := b.store.ToggleMealSelection(id); err != nil {
		log.Printf("Failed to toggle meal %s: %v", id, err)
	}
	meals := meal.Sorted(b.store.Meals())
	selected := b.store.SelectedMealIDs()
	b.mu.Unlock()

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		query.Message.Chat.ID, query.Message.MessageID,
		formatMealsMarkdown(meals, selected), mealsKeyboard(meals, selected))
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// findItem resolves a possibly-truncated callback payload back to the full
// item text. Exact match wins; otherwise the first prefix match is used.
func findItem(items []shopping.Item, payload string) (string, bool) {
	key := strings.ToLower(payload)
	for _, it := range items {
		if strings.ToLower(it.Text) == key {
			return it.Text, true
		}
	}
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(it.Text), key) {
			return it.Text, true
		}
	}
	return "", false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back up to a rune boundary so the payload stays valid UTF-8.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func formatListMarkdown(items []shopping.Item, aisles []string) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	if len(items) == 0 {
		sb.WriteString("\n_The list is empty._\n")
		return sb.String()
	}

	rank := catalog.AisleRank(aisles)
	groups := make(map[string][]shopping.Item)
	var order []string
	for _, it := range items {
		if _, ok := groups[it.Category]; !ok {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	sort.SliceStable(order, func(i, j int) bool { return rank(order[i]) < rank(order[j]) })

	for _, cat := range order {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", cat))
		for _, it := range groups[cat] {
			mark := "•"
			if it.Checked {
				mark = "✅"
			}
			sb.WriteString(fmt.Sprintf("%s %s", mark, it.Text))
			if it.Count > 1 {
				sb.WriteString(fmt.Sprintf(" ×%d", it.Count))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatMealsMarkdown(meals []meal.Meal, selectedIDs []string) string {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var sb strings.Builder
	sb.WriteString("🍽 *Meals*\n\n")
	if len(meals) == 0 {
		sb.WriteString("_No meals yet._\n")
		return sb.String()
	}
	for _, m := range meals {
		mark := "•"
		if selected[m.ID] {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, m.Name))
	}
	return sb.String()
}

func listKeyboard(items []shopping.Item) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, it := range items {
		label := it.Text
		if it.Checked {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "item|"+truncate(it.Text, callbackTextLimit)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mealsKeyboard(meals []meal.Meal, selectedIDs []string) tgbotapi.InlineKeyboardMarkup {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(meals))
	for _, m := range meals {
		label := m.Name
		if selected[m.ID] {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "meal|"+m.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
