package log

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cardpal/internal/commands/types"
	"cardpal/internal/config"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// LogModule implements the CommandModule interface for the log command
type LogModule struct {
	config *config.Config
}

// New creates a new log module
func New(deps *types.Dependencies) *LogModule {
	return &LogModule{config: deps.Config}
}

// Register adds the log command to the command map
func (m *LogModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator

	cmds["log"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "log",
			Description:              "Download bot logs (SuperAdmin only)",
			DefaultMemberPermissions: &adminPerms,
			Contexts:                 &[]discordgo.InteractionContextType{discordgo.InteractionContextBotDM, discordgo.InteractionContextPrivateChannel},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "download",
					Description: "Download all logs",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "latest",
					Description: "Show the latest log entries",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "post",
					Description: "Post the latest log to the configured log channel",
				},
			},
		},
		HandlerFunc: m.handleLog,
	}
}

// Service returns nil; this module has no background services
func (m *LogModule) Service() types.ModuleService { return nil }

// handleLog processes the /log command with subcommands for downloading logs
// Only accessible to super admins in DM context
func (m *LogModule) handleLog(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := ""
	if i.User != nil {
		userID = i.User.ID
	} else if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}

	if !utils.IsSuperAdmin(userID, m.config) {
		_ = utils.RespondEphemeral(s, i, "❌ You do not have permission to use this command.")
		return
	}

	// Defer to show thinking
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		m.sendErrorFollowup(s, i, "❌ No subcommand provided.")
		return
	}

	switch options[0].Name {
	case "download":
		m.handleLogDownload(s, i)
	case "latest":
		m.handleLogLatest(s, i)
	case "post":
		m.handleLogPost(s, i)
	default:
		m.sendErrorFollowup(s, i, "❌ Unknown subcommand.")
	}
}

func (m *LogModule) handleLogDownload(s *discordgo.Session, i *discordgo.InteractionCreate) {
	logDir := m.config.GetLogDir()
	if logDir == "" {
		m.sendErrorFollowup(s, i, "❌ Log directory is not configured.")
		return
	}

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		m.sendErrorFollowup(s, i, "❌ Log directory does not exist.")
		return
	}

	logFiles, err := m.getLogFiles(logDir)
	if err != nil {
		m.config.Logger.Errorf("Error getting log files: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error reading log files.")
		return
	}

	if len(logFiles) == 0 {
		m.sendErrorFollowup(s, i, "❌ No log files found.")
		return
	}

	// Create a temporary zip file
	zipPath := filepath.Join(os.TempDir(), fmt.Sprintf("cardpal_logs_%s.zip", time.Now().Format("2006-01-02_15-04-05")))
	defer func() {
		if err := os.Remove(zipPath); err != nil {
			m.config.Logger.Warnf("could not remove temp zip %s: %v", zipPath, err)
		}
	}() // Clean up after sending

	if err := m.createLogZip(logFiles, zipPath); err != nil {
		m.config.Logger.Errorf("Error creating zip file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error creating log archive.")
		return
	}

	file, err := os.Open(zipPath)
	if err != nil {
		m.config.Logger.Errorf("Error opening zip file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error opening log archive.")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			m.config.Logger.Warnf("error closing zip file: %v", err)
		}
	}()

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: utils.StringPtr(fmt.Sprintf("📁 Log files archive containing %d files:", len(logFiles))),
		Files: []*discordgo.File{
			{
				Name:   filepath.Base(zipPath),
				Reader: file,
			},
		},
	})
	if err != nil {
		m.config.Logger.Errorf("Error sending log archive: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error sending log archive.")
	}
}

func (m *LogModule) handleLogLatest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	logDir := m.config.GetLogDir()
	if logDir == "" {
		m.sendErrorFollowup(s, i, "❌ Log directory is not configured.")
		return
	}

	latestLogFile, err := m.getLatestLogFile(logDir)
	if err != nil {
		m.config.Logger.Errorf("Error getting latest log file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error finding latest log file.")
		return
	}

	lines, err := m.getLastNLines(latestLogFile, 500)
	if err != nil {
		m.config.Logger.Errorf("Error reading log file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error reading log file.")
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("cardpal_latest_%s.txt", time.Now().Format("2006-01-02_15-04-05")))
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			m.config.Logger.Warnf("could not remove temp log file %s: %v", tempPath, err)
		}
	}() // Clean up after sending

	if err := os.WriteFile(tempPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		m.config.Logger.Errorf("Error creating temp file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error creating log file.")
		return
	}

	file, err := os.Open(tempPath)
	if err != nil {
		m.config.Logger.Errorf("Error opening temp file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error opening log file.")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			m.config.Logger.Warnf("error closing temp log file: %v", err)
		}
	}()

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: utils.StringPtr(fmt.Sprintf("📄 Latest %d lines from %s:", len(lines), filepath.Base(latestLogFile))),
		Files: []*discordgo.File{
			{
				Name:   filepath.Base(tempPath),
				Reader: file,
			},
		},
	})
	if err != nil {
		m.config.Logger.Errorf("Error sending latest log: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error sending log file.")
	}
}

// handleLogPost mirrors the latest log into the configured log channel.
func (m *LogModule) handleLogPost(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latestLogFile, err := m.getLatestLogFile(m.config.GetLogDir())
	if err != nil {
		m.config.Logger.Errorf("Error getting latest log file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error finding latest log file.")
		return
	}

	lines, err := m.getLastNLines(latestLogFile, 500)
	if err != nil {
		m.config.Logger.Errorf("Error reading log file: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error reading log file.")
		return
	}

	if err := utils.LogToChannelWithFile(m.config, s, strings.Join(lines, "\n")); err != nil {
		m.config.Logger.Errorf("Error posting log to channel: %v", err)
		m.sendErrorFollowup(s, i, "❌ Error posting to the log channel. Is `log_channel_id` configured?")
		return
	}

	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: utils.StringPtr("✅ Latest log posted to the log channel."),
	})
}

// getLogFiles returns a sorted list of log files in the directory
func (m *LogModule) getLogFiles(logDir string) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return nil, err
	}

	var logFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".log") {
			logFiles = append(logFiles, filepath.Join(logDir, entry.Name()))
		}
	}

	// Sort files by name (which should be chronological due to date format)
	sort.Strings(logFiles)
	return logFiles, nil
}

// getLatestLogFile returns the path to the most recent log file
func (m *LogModule) getLatestLogFile(logDir string) (string, error) {
	logFiles, err := m.getLogFiles(logDir)
	if err != nil {
		return "", err
	}
	if len(logFiles) == 0 {
		return "", fmt.Errorf("no log files found")
	}
	return logFiles[len(logFiles)-1], nil
}

// createLogZip creates a zip archive containing all the log files
func (m *LogModule) createLogZip(logFiles []string, zipPath string) error {
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := zipFile.Close(); err != nil {
			m.config.Logger.Warnf("error closing zip writer file: %v", err)
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if err := zipWriter.Close(); err != nil {
			m.config.Logger.Warnf("error closing zip writer: %v", err)
		}
	}()

	for _, logFile := range logFiles {
		if err := m.addFileToZip(zipWriter, logFile); err != nil {
			return fmt.Errorf("error adding %s to zip: %w", logFile, err)
		}
	}
	return nil
}

// addFileToZip adds a single file to the zip archive
func (m *LogModule) addFileToZip(zipWriter *zip.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			m.config.Logger.Warnf("error closing log file during zip: %v", err)
		}
	}()

	fileInfo, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(fileInfo)
	if err != nil {
		return err
	}

	// Use only the filename in the zip, not the full path
	header.Name = filepath.Base(filePath)
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}

// getLastNLines reads the last N lines from a file
func (m *LogModule) getLastNLines(filePath string, n int) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			m.config.Logger.Warnf("error closing file while tailing: %v", err)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lines) <= n {
		return lines, nil
	}
	return lines[len(lines)-n:], nil
}

// sendErrorFollowup sends an error message as a followup
func (m *LogModule) sendErrorFollowup(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: utils.StringPtr(message),
	})
}
