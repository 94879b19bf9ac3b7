// Command plant-monitor polls four environmental sensors, classifies plant
// health against fixed thresholds, drives the water pump relay and serves
// the latest snapshot over HTTP and MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/plant-monitor/internal/convert"
	"github.com/sweeney/plant-monitor/internal/display"
	"github.com/sweeney/plant-monitor/internal/health"
	"github.com/sweeney/plant-monitor/internal/pump"
	"github.com/sweeney/plant-monitor/internal/sensors"
	"github.com/sweeney/plant-monitor/internal/status"
	"github.com/sweeney/plant-monitor/internal/telemetry"
	"github.com/sweeney/plant-monitor/internal/web"
)

func main() {
	tick := flag.Duration("tick", time.Second, "Sampling interval")
	httpAddr := flag.String("http", ":8080", "HTTP snapshot address (empty to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable telemetry)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	plant := flag.String("plant", "Default Plant", "Plant name shown on the dashboard")
	pumpPin := flag.Int("pin-pump", pump.DefaultPin, "BCM pin number for the pump relay")
	i2cBus := flag.String("i2c", "", "I2C bus name (empty for the first available)")
	adcChannel := flag.Int("adc-channel", sensors.DefaultMoistureChannel, "ADC channel of the moisture probe")
	sim := flag.Bool("sim", false, "Use simulated sensors and no relay hardware")
	console := flag.Bool("console", false, "Render readings to the terminal each tick")
	printReadings := flag.Bool("print-readings", false, "Print current readings and exit")

	flag.Parse()

	if err := run(*tick, *httpAddr, *broker, *heartbeat, *plant, *pumpPin, *i2cBus, *adcChannel, *sim, *console, *printReadings); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(tick time.Duration, httpAddr, broker string, heartbeat time.Duration, plant string, pumpPin int, i2cBus string, adcChannel int, simulated, console, printReadings bool) error {
	// Initialize sensors
	var (
		suite sensors.Suite
		simS  *sensors.SimSuite
		err   error
	)
	if simulated {
		simS, suite = sensors.NewSimSuite(time.Now().UnixNano())
	} else {
		suite, err = sensors.OpenReal(i2cBus, adcChannel)
		if err != nil {
			return fmt.Errorf("init sensors: %w", err)
		}
	}
	defer suite.Close()

	// Print mode
	if printReadings {
		return printOnce(suite)
	}

	// Initialize the relay at its inactive level (pump off)
	var relay pump.Relay
	if simulated {
		relay = pump.NoopRelay{}
	} else {
		relay, err = pump.NewRealRelay(pumpPin)
		if err != nil {
			return fmt.Errorf("init relay: %w", err)
		}
	}
	defer relay.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(plant, time.Now(), status.Config{
		TickMs:      tick.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		PumpPin:     pumpPin,
		Simulated:   simulated,
	})

	// Connect telemetry with a bounded retry; the daemon runs without the
	// broker if the join fails.
	var (
		publisher  telemetry.Publisher
		connStatus telemetry.ConnectionStatus
	)
	if broker != "" {
		real := telemetry.NewRealPublisher(broker)
		if err := real.Connect(); err != nil {
			log.Printf("broker join failed, continuing without telemetry: %v", err)
		}
		defer real.Close()
		publisher = real
		connStatus = real
	} else {
		publisher = telemetry.Discard{}
	}

	// Publish startup event with full status snapshot
	if connStatus != nil {
		tracker.SetMQTTConnected(connStatus.IsConnected())
	}
	snap := tracker.Snapshot()
	startupEvent := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP snapshot server regardless of broker state
	metrics := web.NewMetrics()
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker, metrics)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http snapshot server listening on %s", httpAddr)
	}

	var renderer display.Renderer = display.Noop{}
	if console {
		renderer = display.NewConsole(os.Stdout)
	}

	log.Printf("started: plant=%q tick=%v broker=%s heartbeat=%v sim=%v", plant, tick, broker, heartbeat, simulated)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		suite:      suite,
		relay:      relay,
		publisher:  publisher,
		connStatus: connStatus,
		tracker:    tracker,
		metrics:    metrics,
		display:    renderer,
		heartbeat:  heartbeat,
		now:        time.Now,
	}
	if simS != nil {
		l.onPump = simS.SetPumpOn
	}
	return l.run(ticker.C, sigCh)
}

// loop holds the per-tick collaborators and the state carried across ticks.
type loop struct {
	suite      sensors.Suite
	relay      pump.Relay
	publisher  telemetry.Publisher
	connStatus telemetry.ConnectionStatus
	tracker    *status.Tracker
	metrics    *web.Metrics
	display    display.Renderer
	heartbeat  time.Duration
	now        func() time.Time
	onPump     func(bool) // optional feedback into the simulator

	// carried between ticks
	last          health.Readings // last good value per reading
	haveMoisture  bool            // a good read exists for the reading
	haveLight     bool
	haveClimate   bool
	counts        status.Counts
	prevStatus    health.Status
	prevPumpOn    bool
	lastHeartbeat time.Time
}

func (l *loop) run(tick <-chan time.Time, sig <-chan os.Signal) error {
	l.prevStatus = health.StatusGood
	l.lastHeartbeat = l.now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if l.connStatus != nil {
				l.tracker.SetMQTTConnected(l.connStatus.IsConnected())
			}
			snap := l.tracker.Snapshot()
			event := telemetry.SystemEvent{
				Timestamp:  snap.Now,
				Event:      "SHUTDOWN",
				Reason:     signalName,
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
			}
			if err := l.publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			l.step()
		}
	}
}

// step performs one tick: read, convert, classify, actuate, publish, render.
func (l *loop) step() {
	t := l.now()
	l.counts.Ticks++

	// Read. A failed read keeps the last good value for this tick so a
	// sensor fault never feeds a sentinel into classification.
	raw, err := l.suite.Moisture.ReadRaw()
	if err != nil {
		log.Printf("moisture read error: %v", err)
		l.counts.MoistureErrors++
	} else {
		l.last.Moisture = convert.MoisturePercent(raw)
		l.haveMoisture = true
	}

	lux, err := l.suite.Light.ReadLux()
	if err != nil {
		log.Printf("light read error: %v", err)
		l.counts.LightErrors++
	} else {
		l.last.Light = convert.LightPercent(lux)
		l.haveLight = true
	}

	temperature, humidity, err := l.suite.Climate.ReadClimate()
	if err != nil {
		log.Printf("climate read error: %v", err)
		l.counts.ClimateErrors++
	} else {
		l.last.Temperature = temperature
		l.last.Humidity = humidity
		l.haveClimate = true
	}

	// Until every sensor has produced one good value there is nothing to
	// retain: the zero defaults must not reach the classifier or the pump.
	// The relay holds at its inactive level and the status stays at its
	// boot value.
	primed := l.haveMoisture && l.haveLight && l.haveClimate

	res := health.Result{Status: health.StatusGood}
	pumpOn := false
	if primed {
		res = health.Classify(l.last)
		// There is no debounce around the pump threshold.
		pumpOn = pump.Decide(l.last.Moisture)
	}

	// Actuate. The relay is commanded every tick.
	if err := l.relay.Set(pumpOn); err != nil {
		log.Printf("relay error: %v", err)
	}
	if pumpOn && !l.prevPumpOn {
		l.counts.PumpStarts++
	}
	if l.onPump != nil {
		l.onPump(pumpOn)
	}

	// Publish snapshot
	if l.connStatus != nil {
		l.tracker.SetMQTTConnected(l.connStatus.IsConnected())
	}
	l.tracker.Update(l.last.Moisture, l.last.Light, l.last.Temperature, l.last.Humidity, res, pumpOn, l.counts)
	snap := l.tracker.Snapshot()

	if l.metrics != nil {
		l.metrics.Observe(snap)
	}
	l.display.Render(snap)

	// Health transition event
	if res.Status != l.prevStatus {
		log.Printf("health: %s -> %s (%s)", l.prevStatus, res.Status, res.Reason)
		event := telemetry.HealthEvent{
			Timestamp: t,
			Plant:     snap.PlantName,
			Result:    res,
			Readings:  l.last,
		}
		if err := l.publisher.PublishHealth(event); err != nil {
			log.Printf("publish error: %v", err)
			// Don't crash on publish failure
		}
	}

	// Heartbeat
	if l.heartbeat > 0 && t.Sub(l.lastHeartbeat) >= l.heartbeat {
		l.lastHeartbeat = t
		hbEvent := telemetry.SystemEvent{
			Timestamp:  t,
			Event:      "HEARTBEAT",
			RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
		}
		if err := l.publisher.PublishSystem(hbEvent); err != nil {
			log.Printf("heartbeat publish error: %v", err)
		}
	}

	l.prevStatus = res.Status
	l.prevPumpOn = pumpOn
}

// printOnce reads each sensor a single time and prints the converted values.
func printOnce(suite sensors.Suite) error {
	raw, err := suite.Moisture.ReadRaw()
	if err != nil {
		return fmt.Errorf("read moisture: %w", err)
	}
	lux, err := suite.Light.ReadLux()
	if err != nil {
		return fmt.Errorf("read light: %w", err)
	}
	temperature, humidity, err := suite.Climate.ReadClimate()
	if err != nil {
		return fmt.Errorf("read climate: %w", err)
	}

	fmt.Printf("moisture: %.1f%% (raw %.0f)\n", convert.MoisturePercent(raw), raw)
	fmt.Printf("light: %.1f%% (%.0f lux)\n", convert.LightPercent(lux), lux)
	fmt.Printf("temperature: %.1f°C\n", temperature)
	fmt.Printf("humidity: %.1f%%\n", humidity)
	return nil
}
