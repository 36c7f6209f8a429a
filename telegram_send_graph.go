package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// крупные картинки телеграм сжимает до нечитаемости, их шлем документом
const maxSizePhoto = 150000

// sendGraphVisualization отправляет PNG в чат фото или документом в зависимости от размера
func sendGraphVisualization(api messageSender, chatID int64, graph []byte, view, caption string) {
	pngFile := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s.png", view, time.Now().Format("20060102-150405")),
		Bytes: graph,
	}

	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photo.Caption = caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, pngFile)
		doc.Caption = caption
		msg = doc
	}

	if _, err := api.Send(msg); err != nil {
		log.Printf("[Error] send chart %s to %d: %v", view, chatID, err)
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send the %s chart: %v", view, err)))
	}
}
