package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"
	"wiwbot/internal/adapters/handler"
	"wiwbot/internal/adapters/reporter"
	"wiwbot/internal/adapters/sender"
	"wiwbot/internal/adapters/store"
	"wiwbot/internal/core/domain/command"
	"wiwbot/internal/core/service"

	"github.com/go-telegram/bot/models"

	"github.com/rs/zerolog"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting wiwbot...")

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("handler.timeout", "30s")
	viper.SetDefault("database.driver", store.DriverSQLite)
	viper.SetDefault("database.dsn", "wiw.db")
	viper.SetDefault("wiw.command", "!wiw")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.DefaultContextLogger = &log.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	endpointStore, err := store.Open(viper.GetString("database.driver"), viper.GetString("database.dsn"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening endpoint store")
	}
	defer endpointStore.Close()

	token := viper.GetString("telegram.bot_token")
	b, err := bot.New(token, handler.BotOptions(noOpHandler)...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	endpoints := service.NewEndpoints(endpointStore, reporter.NewECS(&http.Client{}))

	wiwCommand := viper.GetString("wiw.command")
	if wiwCommand == "" {
		log.Fatal().Msg("wiw.command must not be empty")
	}

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewWiw(command.WiwParams{
		Endpoints:  endpoints,
		TextSender: s,
		Command:    wiwCommand,
	}))

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	commandHandler := handler.NewCommand(commandRegistry, handlerTimeout)
	commandHandler.Register(b, wiwCommand)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
