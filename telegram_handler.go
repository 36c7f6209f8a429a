package main

import (
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/config"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramBot struct {
	api       messageSender
	service   *leadService
	publicURL string
	uploadDir string
	fileURL   func(fileID string) (string, error)
}

func newTelegramBot(api *tgbotapi.BotAPI, service *leadService, cfg *config.Config) *telegramBot {
	return &telegramBot{
		api:       api,
		service:   service,
		publicURL: cfg.PublicUrl,
		uploadDir: cfg.UploadDir,
		fileURL:   api.GetFileDirectURL,
	}
}

func (b *telegramBot) run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		message := update.Message
		if message == nil {
			continue
		}

		switch {
		case message.Document != nil:
			go b.handleDocument(message)
		case message.IsCommand():
			go b.handleCommand(message.Chat.ID, message.Command(), message.CommandArguments())
		case message.Text != "":
			go b.sendUploadLink(message.Chat.ID)
		}
	}
}

func (b *telegramBot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[Error] send message to %d: %v", chatID, err)
	}
}

// sendTable таблицы go-pretty читаемы только моноширинным шрифтом
func (b *telegramBot) sendTable(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+html.EscapeString(text)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[Error] send table to %d: %v", chatID, err)
	}
}

func (b *telegramBot) sendUploadLink(chatID int64) {
	id := b.service.links.Bind(chatID, b.service.now())
	b.send(chatID, "Open the link to upload a lead export from the browser: "+b.publicURL+"/?id="+id)
}

func (b *telegramBot) dashboardURL(sessionID string) string {
	return b.publicURL + "/sessions/" + sessionID
}

func (b *telegramBot) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	fileURL, err := b.fileURL(message.Document.FileID)
	if err != nil {
		log.Printf("[Error] getting file URL: %v", err)
		id := b.service.links.Bind(chatID, b.service.now())
		b.send(chatID, "Error on upload file, if file too big try another method, upload by this link: "+b.publicURL+"/?id="+id)
		return
	}

	filePath := filepath.Join(b.uploadDir, strconv.FormatInt(chatID, 10), filepath.Base(message.Document.FileName))
	data, err := downloadFile(fileURL, filePath)
	if err != nil {
		log.Printf("[Error] download %s: %v", message.Document.FileName, err)
		b.send(chatID, "Could not download the file, please try again.")
		return
	}

	snapshot, err := b.service.ingest(chatSession(chatID), "telegram", message.Document.FileName, data)
	if err != nil {
		b.send(chatID, ingestErrorText(err))
		return
	}
	b.sendIngestResult(chatID, chatSession(chatID), snapshot)
}

// NotifyUpload итог загрузки через веб-ссылку, привязанную к чату
func (b *telegramBot) NotifyUpload(chatID int64, sessionID string, snapshot *analytics.Snapshot) {
	b.sendIngestResult(chatID, sessionID, snapshot)
}

func (b *telegramBot) sendIngestResult(chatID int64, sessionID string, snapshot *analytics.Snapshot) {
	b.send(chatID, GenerateIngestSummary(snapshot)+"\nDashboard: "+b.dashboardURL(sessionID)+"\nTry /summary, /status, /trend monthly or /counselors.")
	if len(snapshot.Leads) == 0 {
		return
	}
	d := analytics.BuildDashboard(snapshot, analytics.DashboardQuery{}, b.service.now(), b.service.calendar)
	b.sendView(chatID, d, "status")
}

func (b *telegramBot) sendView(chatID int64, d models.Dashboard, view string) {
	graph, err := renderView(d, view)
	if err != nil {
		log.Printf("[Error] render %s for %d: %v", view, chatID, err)
		return
	}
	sendGraphVisualization(b.api, chatID, graph, view, fmt.Sprintf("%s, %s", view, d.Window))
}

func ingestErrorText(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFile):
		return "Unsupported file. Send a .csv or .xlsx export, or a zip, gz or lz4 archive containing one."
	case errors.Is(err, analytics.ErrMalformedFile):
		return "Could not read the file as a lead table: " + err.Error()
	}
	return "Upload failed: " + err.Error()
}

func downloadFile(fileURL, filePath string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "creating directory")
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, errors.Wrap(err, "downloading file")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("downloading file: status %d", resp.StatusCode)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "creating file")
	}
	defer file.Close()
	if _, err = io.Copy(file, resp.Body); err != nil {
		return nil, errors.Wrap(err, "writing file")
	}
	return os.ReadFile(filePath)
}
