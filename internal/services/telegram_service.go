package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/sufra/internal/utils"
)

// TelegramService sends staff notifications through the Telegram Bot API.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		utils.InfoLogger.Info("telegram bot token not configured, skipping notification")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// OrderNotification carries the order summary sent to branch staff.
type OrderNotification struct {
	OrderNumber        string
	BranchName         string
	StaffChatID        string
	Items              []OrderItemNotification
	TotalPrice         string
	PreparationMinutes int
	PaymentMethod      string
	Status             string
}

// OrderItemNotification is one line of the staff notification.
type OrderItemNotification struct {
	Name      string
	Quantity  int
	Options   []string
	LineTotal string
}

// NotifyNewOrder formats and sends a new-order message to the branch staff
// chat, falling back to the admin chat when the branch has none configured.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	chatID := order.StaffChatID
	if chatID == "" {
		chatID = s.adminChatID
	}
	if chatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b> x%d = %s\n",
			i+1, item.Name, item.Quantity, item.LineTotal))
		if len(item.Options) > 0 {
			itemsList.WriteString("   " + strings.Join(item.Options, ", ") + "\n")
		}
	}

	message := fmt.Sprintf(`<b>🛒 NEW ORDER</b>
<b>📋 Order:</b> %s
<b>🏬 Branch:</b> %s
<b>📦 Items:</b>
%s<b>💰 Total:</b> %s
<b>⏱ Prep estimate:</b> %d min
<b>💳 Payment:</b> %s
━━━━━━━━━━━━━━━━━━`,
		order.OrderNumber,
		order.BranchName,
		itemsList.String(),
		order.TotalPrice,
		order.PreparationMinutes,
		order.PaymentMethod,
	)

	return s.SendMessage(chatID, strings.TrimSpace(message))
}
