package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cardpal/internal/config"

	"github.com/bwmarrin/discordgo"
)

// LogToChannel mirrors a bot activity message into the configured log channel.
func LogToChannel(cfg *config.Config, s *discordgo.Session, m string) error {
	logEmbed := &discordgo.MessageEmbed{
		Title:       "CardPal Message",
		Description: m,
		Color:       Colors.Info(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if id := cfg.GetLogChannelID(); id != "" {
		_, err := s.ChannelMessageSendEmbed(id, logEmbed)
		if err != nil {
			return err
		}
	} else {
		return errors.New("unable to log to channel: log_channel_id is not set")
	}

	return nil
}

// LogToChannelWithFile posts a log embed with the full content attached as a file.
func LogToChannelWithFile(cfg *config.Config, s *discordgo.Session, fileContent string) error {
	// Create a file to upload based on string
	file, err := os.CreateTemp("", "log-*.txt")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(file.Name()); err != nil {
			cfg.Logger.Errorf("failed to remove temp log file: %v", err)
		}
	}()

	if _, err := file.WriteString(fileContent); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	reader, err := os.Open(file.Name())
	if err != nil {
		return err
	}
	defer reader.Close()

	embed := &discordgo.MessageEmbed{
		Title:       "CardPal Log",
		Description: "Log file attached.",
		Color:       Colors.Info(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if id := cfg.GetLogChannelID(); id != "" {
		_, err := s.ChannelMessageSendEmbed(id, embed)
		if err != nil {
			return fmt.Errorf("failed to send log embed: %v", err)
		}

		_, err = s.ChannelFileSend(id, "log.txt", reader)
		if err != nil {
			return fmt.Errorf("failed to send log file: %v", err)
		}

	} else {
		return errors.New("unable to log to channel: log_channel_id is not set")
	}

	return nil
}
