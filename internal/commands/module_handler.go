package commands

import (
	"fmt"
	"strings"

	"cardpal/internal/cardcache"
	"cardpal/internal/commands/modules/card"
	configmod "cardpal/internal/commands/modules/config"
	"cardpal/internal/commands/modules/guessgame"
	"cardpal/internal/commands/modules/help"
	logmod "cardpal/internal/commands/modules/log"
	"cardpal/internal/commands/modules/ping"
	"cardpal/internal/commands/modules/profile"
	"cardpal/internal/commands/modules/status"
	timemod "cardpal/internal/commands/modules/time"
	"cardpal/internal/commands/modules/tournament"
	"cardpal/internal/commands/modules/trivia"
	"cardpal/internal/commands/types"
	internalConfig "cardpal/internal/config"
	"cardpal/internal/database"
	"cardpal/internal/guess"
	"cardpal/internal/ygoprodeck"

	"github.com/bwmarrin/discordgo"
)

// ModuleHandler manages command modules and routes interactions.
//
// Component and modal custom IDs are namespaced "<module>:<rest>" so the
// handler can route them without knowing each module's widgets. The
// guessgame and trivia modules are the current users.
type ModuleHandler struct {
	commands   map[string]*types.Command
	modules    map[string]types.CommandModule
	config     *internalConfig.Config
	db         *database.DB
	deps       *types.Dependencies
	cardClient *ygoprodeck.Client
	cardCache  *cardcache.Service
}

// NewModuleHandler creates a new module-based command handler
func NewModuleHandler(cfg *internalConfig.Config) (*ModuleHandler, error) {
	cardClient := ygoprodeck.NewClient(cfg.GetYGOProDeckBaseURL())
	cardCache := cardcache.New(cardClient, cfg.GetGuessArchetype())

	db, err := database.NewDB(cfg.GetDatabasePath())
	if err != nil {
		cfg.Logger.Warnf("Warning: Failed to initialize database: %v", err)
	}

	// The question bank is configuration: a missing or malformed bank
	// takes the whole guessing feature down, so fail loudly here.
	bank, err := guess.LoadBank(cfg.GetQuestionBankPath())
	if err != nil {
		return nil, fmt.Errorf("error loading question bank: %w", err)
	}

	registry := guess.NewRegistry(guess.Options{
		MaxSessions:    cfg.GetGuessMaxSessions(),
		AnswerTimeout:  cfg.GetGuessAnswerTimeout(),
		QuestionBudget: cfg.GetGuessQuestionBudget(),
	})

	h := &ModuleHandler{
		commands:   make(map[string]*types.Command),
		modules:    make(map[string]types.CommandModule),
		config:     cfg,
		db:         db,
		cardClient: cardClient,
		cardCache:  cardCache,
		deps: &types.Dependencies{
			Config:        cfg,
			DB:            db,
			CardClient:    cardClient,
			CardCache:     cardCache,
			GuessSessions: registry,
			QuestionBank:  bank,
			Session:       nil, // Set later
		},
	}

	h.registerModules()

	return h, nil
}

// registerModules registers all command modules
func (h *ModuleHandler) registerModules() {
	modules := []struct {
		name   string
		module types.CommandModule
	}{
		{"ping", ping.New(h.deps)},
		{"help", help.New(h.deps)},
		{"card", card.New(h.deps)},
		{"guess", guessgame.New(h.deps)},
		{"trivia", trivia.New(h.deps)},
		{"tournament", tournament.New(h.deps)},
		{"profile", profile.New(h.deps)},
		{"status", status.New(h.deps)},
		{"time", timemod.New(h.deps)},
		{"log", logmod.New(h.deps)},
		{"config", configmod.New(h.deps)},
	}

	for _, m := range modules {
		m.module.Register(h.commands, h.deps)
		h.modules[m.name] = m.module
	}
}

// GetModule returns a module by name.
// This is used for external access (scheduler, bot event handlers).
func (h *ModuleHandler) GetModule(name string) types.CommandModule {
	return h.modules[name]
}

// GetDB returns the database instance
func (h *ModuleHandler) GetDB() *database.DB {
	return h.db
}

// GetCardCache returns the shared card pool cache
func (h *ModuleHandler) GetCardCache() *cardcache.Service {
	return h.cardCache
}

// RegisterCommands registers all slash commands with Discord
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session) error {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return err
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, ec := range existingCommands {
		existingByName[ec.Name] = ec
	}

	for _, c := range h.commands {
		if c.Development {
			// Unregister development commands if they exist
			for _, existingCmd := range existingCommands {
				if existingCmd.Name == c.ApplicationCommand.Name {
					err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID)
					if err != nil {
						h.config.Logger.Warnf("Error deleting command %s: %v", c.ApplicationCommand.Name, err)
					} else {
						h.config.Logger.Infof("Unregistered command: %s", c.ApplicationCommand.Name)
					}
				}
			}
			continue
		}

		if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
			cmd, err := s.ApplicationCommandEdit(s.State.User.ID, "", existing.ID, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Updated command: %s", cmd.Name)
		} else {
			cmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Registered command: %s", cmd.Name)
		}
	}

	return nil
}

// HandleInteraction routes slash command interactions to appropriate handlers
func (h *ModuleHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ApplicationCommandData().Name == "" {
		return
	}

	commandName := i.ApplicationCommandData().Name
	if cmd, exists := h.commands[commandName]; exists {
		cmd.HandlerFunc(s, i)
	}
}

// HandleComponentInteraction routes component interactions by custom ID namespace
func (h *ModuleHandler) HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, "guess:"):
		if mod, ok := h.GetModule("guess").(*guessgame.GuessModule); ok {
			mod.HandleComponent(s, i)
			return
		}
	case strings.HasPrefix(customID, "trivia:"):
		if mod, ok := h.GetModule("trivia").(*trivia.TriviaModule); ok {
			mod.HandleComponent(s, i)
			return
		}
	}

	h.config.Logger.Warnf("Component interaction with unroutable custom ID: %s", customID)
}

// HandleModalSubmit routes modal submissions by custom ID namespace
func (h *ModuleHandler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID

	if strings.HasPrefix(customID, "trivia:") {
		if mod, ok := h.GetModule("trivia").(*trivia.TriviaModule); ok {
			mod.HandleModalSubmit(s, i)
			return
		}
	}

	h.config.Logger.Warnf("Modal submit with unroutable custom ID: %s", customID)
}

// HandleAutocomplete routes autocomplete requests to appropriate module handlers
func (h *ModuleHandler) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	commandName := i.ApplicationCommandData().Name

	// Currently only the card command offers autocomplete
	if commandName == "card" {
		if mod, ok := h.GetModule("card").(*card.CardModule); ok {
			mod.HandleAutocomplete(s, i)
		} else {
			h.config.Logger.Warnf("Autocomplete received for card but card module not available")
		}
	}
}

// UnregisterCommands removes all registered commands
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session) {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.commands[existingCmd.Name]; exists {
			err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID)
			if err != nil {
				h.config.Logger.Warnf("Error deleting command %s: %v", existingCmd.Name, err)
			} else {
				h.config.Logger.Infof("Unregistered command: %s", existingCmd.Name)
			}
		}
	}
}

// InitializeModuleServices hydrates services with the Discord session.
// Called after the Discord session is established.
func (h *ModuleHandler) InitializeModuleServices(s *discordgo.Session) error {
	// Update dependencies with session
	h.deps.Session = s

	// Hydrate services for all modules with the Discord session
	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			if err := service.HydrateServiceDiscordSession(s); err != nil {
				return fmt.Errorf("failed to hydrate service with Discord session: %w", err)
			}
		}
	}

	return nil
}

// RegisterModuleSchedulers registers recurring tasks from all modules with the scheduler.
// Called after services are initialized.
func (h *ModuleHandler) RegisterModuleSchedulers(scheduler interface {
	RegisterNewMinuteFunc(fn func() error)
	RegisterNewHourFunc(fn func() error)
}) {
	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			// Register minute functions
			if minuteFuncs := service.MinuteFuncs(); minuteFuncs != nil {
				for _, fn := range minuteFuncs {
					scheduler.RegisterNewMinuteFunc(fn)
				}
			}

			// Register hour functions
			if hourFuncs := service.HourFuncs(); hourFuncs != nil {
				for _, fn := range hourFuncs {
					scheduler.RegisterNewHourFunc(fn)
				}
			}
		}
	}
}
