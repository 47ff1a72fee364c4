package tokens

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the token balance commands
type Feature struct {
	uowFactory    application.UnitOfWorkFactory
	workflow      *application.GachaWorkflow
	confirmations *application.ConfirmationWorkflow
}

// New creates the tokens feature
func New(uowFactory application.UnitOfWorkFactory, workflow *application.GachaWorkflow, confirmations *application.ConfirmationWorkflow) *Feature {
	return &Feature{
		uowFactory:    uowFactory,
		workflow:      workflow,
		confirmations: confirmations,
	}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "tokens",
			Aliases:     []string{"bal"},
			Description: "Show your token balance",
			Run:         f.handleBalance,
		},
		{
			Name:        "addtokens",
			Usage:       "<@user> <amount><tier>",
			Description: "Give tokens to a user, e.g. 5SSR",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleAdjust(c, true) },
		},
		{
			Name:        "removetokens",
			Usage:       "<@user> <amount><tier>",
			Description: "Take tokens from a user",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleAdjust(c, false) },
		},
		{
			Name:        "resettokens",
			Description: "Clear every token balance (asks for confirmation)",
			AdminOnly:   true,
			Run:         f.handleReset,
		},
	}
}
