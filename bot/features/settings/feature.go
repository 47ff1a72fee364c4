package settings

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the per-guild gacha settings
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	workflow   *application.GachaWorkflow
}

// New creates the settings feature
func New(uowFactory application.UnitOfWorkFactory, workflow *application.GachaWorkflow) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		workflow:   workflow,
	}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "settings",
			Description: "Show the gacha settings of this server",
			AdminOnly:   true,
			Run:         f.handleShow,
		},
		{
			Name:        "setticketrole",
			Usage:       "<role>",
			Description: "Set the role needed for a single spin",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleTicketRole(c, 1) },
		},
		{
			Name:        "setticketrole10",
			Usage:       "<role>",
			Description: "Set the role needed for ten spins",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleTicketRole(c, 10) },
		},
		{
			Name:        "editpull",
			Usage:       "<url|remove>",
			Description: "Set the loading GIF shown before a result",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleGif(c, false) },
		},
		{
			Name:        "editpullssr",
			Usage:       "<url|remove>",
			Description: "Set the loading GIF shown before an SSR or promotional result",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleGif(c, true) },
		},
		{
			Name:        "setcurrency",
			Usage:       "<emoji>",
			Description: "Set the emoji shown next to token balances",
			AdminOnly:   true,
			Run:         f.handleCurrency,
		},
	}
}
