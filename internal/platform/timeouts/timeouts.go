// Package timeouts defines shared timeout constants used by the commands.
package timeouts

import "time"

// ScenarioStep caps a single scenario step, including any turns it runs.
const ScenarioStep = 10 * time.Second

// Simulation caps a whole battlesim run.
const Simulation = 5 * time.Minute

// TelemetryShutdown limits how long span export may take when a command exits.
const TelemetryShutdown = 5 * time.Second
