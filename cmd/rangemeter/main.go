package main

import (
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/swdee/go-i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	vl53l0x "github.com/swdee/go-vl53l0x"
	"github.com/swdee/go-vl53l0x/internal/config"
	"github.com/swdee/go-vl53l0x/internal/sampler"
)

// measurement is the JSON payload published per window
type measurement struct {
	AvgMM    uint16 `json:"avg_mm"`
	Degraded bool   `json:"degraded"`
	TS       int64  `json:"ts"`
}

func main() {

	configPath := flag.String("config", "rangemeter.yaml", "path to configuration file")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("loading config failed")
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	bus, closeBus, err := openBus(cfg.Sensor)
	if err != nil {
		log.Fatal().Err(err).Msg("opening sensor bus failed")
	}
	defer closeBus()

	sensor, err := vl53l0x.New(bus, cfg.Sensor.IO2V8)
	if err != nil {
		log.Fatal().Err(err).Msg("sensor init failed")
	}

	sensor.SetTimeout(time.Duration(cfg.Sensor.IOTimeoutMs) * time.Millisecond)

	log.Info().
		Str("bus", cfg.Sensor.Bus).
		Uint8("address", cfg.Sensor.Address).
		Msg("sensor initialized")

	if err := sensor.StartContinuous(cfg.Sensor.PeriodMs); err != nil {
		log.Fatal().Err(err).Msg("start continuous failed")
	}

	defer func() {
		if err := sensor.StopContinuous(); err != nil {
			log.Error().Err(err).Msg("stop continuous failed")
		}
	}()

	// optional MQTT publisher
	var client mqtt.Client

	if cfg.MQTT.Broker != "" {
		opts := mqtt.NewClientOptions().
			AddBroker(cfg.MQTT.Broker).
			SetClientID(cfg.MQTT.ClientID)

		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Fatal().Err(token.Error()).Msg("MQTT connect failed")
		}
		defer client.Disconnect(250)

		log.Info().Str("broker", cfg.MQTT.Broker).Str("topic", cfg.MQTT.Topic).
			Msg("connected to MQTT")
	}

	s := sampler.New(sampler.Config{
		Window: cfg.Sampling.Window,
		MinMM:  cfg.Sampling.MinMM,
		MaxMM:  cfg.Sampling.MaxMM,
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.Sampling.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			log.Info().Msg("shutting down")
			return

		case <-ticker.C:
			m, err := s.Measure(sensor)

			if err != nil {
				log.Error().Err(err).Msg("measurement failed")
				continue
			}

			if m.Degraded {
				log.Warn().Uint16("avg_mm", m.AvgMM).Msg("measurement degraded")
			} else {
				log.Info().Uint16("avg_mm", m.AvgMM).Msg("measurement")
			}

			if client != nil {
				payload, err := json.Marshal(measurement{
					AvgMM:    m.AvgMM,
					Degraded: m.Degraded,
					TS:       time.Now().Unix(),
				})

				if err != nil {
					log.Error().Err(err).Msg("marshal measurement failed")
					continue
				}

				client.Publish(cfg.MQTT.Topic, 0, false, payload)
			}
		}
	}
}

// openBus opens the configured transport and returns it with its closer
func openBus(cfg config.SensorConfig) (vl53l0x.Bus, func(), error) {

	switch cfg.Transport {

	case config.TransportPeriph:
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}

		b, err := i2creg.Open(cfg.Bus)
		if err != nil {
			return nil, nil, err
		}

		return vl53l0x.NewPeriphBus(b, uint16(cfg.Address)), func() { b.Close() }, nil

	default:
		conn, err := i2c.New(cfg.Address, cfg.Bus)
		if err != nil {
			return nil, nil, err
		}

		bus, err := vl53l0x.NewI2CBus(conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}

		return bus, func() { bus.Close() }, nil
	}
}
