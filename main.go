package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/config"
)

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	audit, err := newIngestAudit(cfg.DbDsn)
	if err != nil {
		log.Fatalln("cannot connect to clickhouse", err)
	}

	service := newLeadService(
		analytics.NewSessions(cfg.SessionTTL),
		analytics.Calendar{Location: cfg.Location, WeekStart: cfg.WeekStart},
		audit,
	)
	server := &webServer{service: service}

	var bot *telegramBot
	var updates tgbotapi.UpdatesChannel
	if cfg.TgToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TgToken)
		if err != nil {
			log.Fatal("tg error", err)
		}
		log.Printf("Authorized on account %s", api.Self.UserName)

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err = api.GetUpdatesChan(u)
		if err != nil {
			log.Fatal("tg updates error", err)
		}
		bot = newTelegramBot(api, service, cfg)
		server.notifier = bot
	} else {
		log.Println("[Warning] TG_TOKEN is empty, telegram bot disabled")
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			service.expire(cfg.SessionTTL)
			if err := removeOldFiles(cfg.UploadDir, time.Now().Add(-cfg.SessionTTL)); err != nil && !os.IsNotExist(err) {
				log.Printf("[Error] remove old uploads: %v", err)
			}
		}
	}()

	if bot != nil {
		go bot.run(updates)
	}

	fmt.Println("listen on: " + cfg.PublicUrl)
	if err := http.ListenAndServe(cfg.HttpAddr, server.routes()); err != nil {
		fmt.Println("Error starting server:", err)
		os.Exit(1)
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}

		info, err := file.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			fmt.Printf("Removed file: %s\n", filePath)
		}
	}

	return nil
}
