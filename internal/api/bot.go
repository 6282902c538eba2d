package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "cell-finder/internal/application"
	"cell-finder/internal/container"
	"cell-finder/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для поиска флуоресцентных клеток на снимках микроскопа.

📸 Отправьте мне снимок, и я найду на нём клетки и их центры.

📋 Команды:
/detect — найти клетки на снимке
/params — текущие настройки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте снимок фотографией или файлом (PNG, TIFF без сжатия)
2️⃣ Бот сгладит шум, выделит яркие области и отберёт круглые
3️⃣ Вы получите координаты центров и снимок с разметкой

⚙️ Настройки:
/params — показать
/set <имя> <значение> — изменить, например /set percentile 95
/reset — вернуть значения по умолчанию

📋 Команды:
/detect — начать поиск
/cancel — отменить операцию`

	msgAwaitingFrame   = "📸 Отправьте снимок для поиска клеток."
	msgCancelled       = "❌ Операция отменена. Отправьте /detect для нового поиска."
	msgSendFrame       = "📸 Пожалуйста, отправьте снимок для поиска клеток."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю снимок..."
	msgBusy            = "⏳ Предыдущий снимок ещё обрабатывается."
	msgNoCells         = "🔍 Клетки не обнаружены. Попробуйте снизить /set percentile."
	msgNotImage        = "📎 Этот файл не похож на изображение."
	msgSetUsage        = "Использование: /set <имя> <значение>\nИмена: %s"
	msgReset           = "♻️ Настройки сброшены."
	msgProcessingError = "⚠️ Не удалось обработать снимок. Попробуйте другой кадр или проверьте настройки."

	maxListedCells = 50
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	users     *app.UserService
	detection *app.DetectionService
	log       logs.Log
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	c.Log.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		users:     c.UserService,
		detection: c.DetectionService,
		log:       c.Log,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Errorf("Error getting user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	fileID, ok := imageFileID(msg)
	if !ok {
		if msg.Document != nil {
			b.sendMessage(msg.Chat.ID, msgNotImage)
			return
		}
		b.sendMessage(msg.Chat.ID, msgSendFrame)
		return
	}
	if user.State == entity.StateProcessing {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}
	b.handleFrame(ctx, msg, fileID)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.users.Cancel(ctx, user.ID, chatID); err != nil {
			b.log.Warnf("Error saving user %v: %v", user.ID, err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "detect":
		if _, err := b.users.BeginDetect(ctx, user.ID, chatID); err != nil {
			b.log.Warnf("Error saving user %v: %v", user.ID, err)
		}
		b.sendMessage(chatID, msgAwaitingFrame)

	case "params":
		b.sendMessage(chatID, formatParams(user.Params))

	case "set":
		name, value, err := parseSetArgs(msg.CommandArguments())
		if err != nil {
			b.sendMessage(chatID, fmt.Sprintf(msgSetUsage, strings.Join(entity.ParameterNames, ", ")))
			return
		}
		updated, err := b.users.SetParameter(ctx, user.ID, chatID, name, value)
		if err != nil {
			b.sendMessage(chatID, fmt.Sprintf("⚠️ %v", err))
			return
		}
		b.sendMessage(chatID, formatParams(updated.Params))

	case "reset":
		updated, err := b.users.ResetParameters(ctx, user.ID, chatID)
		if err != nil {
			b.log.Warnf("Error resetting user %v: %v", user.ID, err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgReset+"\n\n"+formatParams(updated.Params))

	case "cancel":
		if _, err := b.users.Cancel(ctx, user.ID, chatID); err != nil {
			b.log.Warnf("Error saving user %v: %v", user.ID, err)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleFrame скачивает снимок и отправляет результат поиска
func (b *Bot) handleFrame(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.log.Errorf("Error downloading frame: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.detection.ProcessFrame(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		b.log.Warnf("Error processing frame from %v: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if !out.Result.HasCells() {
		b.sendMessage(msg.Chat.ID, msgNoCells)
		return
	}

	text := formatResult(out.Result)
	if out.Highlighted == nil {
		b.sendMessage(msg.Chat.ID, text)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "cells.jpg", Bytes: out.Highlighted})
	// подпись к фото ограничена 1024 символами
	if len(text) <= 1024 {
		photo.Caption = text
		text = ""
	}
	if _, err := b.api.Send(photo); err != nil {
		b.log.Errorf("Error sending photo: %v", err)
	}
	if text != "" {
		b.sendMessage(msg.Chat.ID, text)
	}
}

// imageFileID выбирает фото максимального разрешения или документ-изображение
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

func parseSetArgs(args string) (string, float64, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected name and value, got %q", args)
	}
	value, err := strconv.ParseFloat(strings.Replace(fields[1], ",", ".", 1), 64)
	if err != nil {
		return "", 0, err
	}
	return fields[0], value, nil
}

func formatParams(p entity.DetectionParameters) string {
	var sb strings.Builder
	sb.WriteString("⚙️ Настройки:\n")
	fmt.Fprintf(&sb, "color_sigma = %g\n", p.ColorSigma)
	fmt.Fprintf(&sb, "space_sigma = %g\n", p.SpaceSigma)
	fmt.Fprintf(&sb, "filter_diameter = %g\n", p.FilterDiameter)
	fmt.Fprintf(&sb, "threshold_percentile = %g\n", p.ThresholdPercentile)
	fmt.Fprintf(&sb, "min_area_fraction = %g\n", p.MinAreaFraction)
	fmt.Fprintf(&sb, "max_area_fraction = %g\n", p.MaxAreaFraction)
	fmt.Fprintf(&sb, "roundness_factor = %g", p.RoundnessFactor)
	return sb.String()
}

func formatResult(r *entity.DetectionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔬 Найдено клеток: %d (кадр %d×%d)\n", len(r.Detections), r.ImageWidth, r.ImageHeight)
	for i, d := range r.Detections {
		if i == maxListedCells {
			fmt.Fprintf(&sb, "… и ещё %d", len(r.Detections)-maxListedCells)
			break
		}
		fmt.Fprintf(&sb, "%d. (%d, %d)\n", i+1, d.Centroid.X, d.Centroid.Y)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorf("Error sending message: %v", err)
	}
}
