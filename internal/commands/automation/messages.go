package automationcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const runMessageType = "sitecms.automation.run"

// Run triggers.
const (
	TriggerCron   = "cron"
	TriggerManual = "manual"
)

// RunAutomationCommand runs one automation cycle.
type RunAutomationCommand struct {
	// Trigger records what started the run; empty means manual.
	Trigger string `json:"trigger,omitempty"`
}

// Type implements command.Message.
func (RunAutomationCommand) Type() string { return runMessageType }

func (cmd RunAutomationCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Trigger, validation.In(TriggerCron, TriggerManual)),
	)
}

func (cmd RunAutomationCommand) trigger() string {
	if cmd.Trigger == "" {
		return TriggerManual
	}
	return cmd.Trigger
}
