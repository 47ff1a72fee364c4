package gacha

import (
	"time"

	"gachabot/application"
	"gachabot/bot/common"
	domaingacha "gachabot/domain/gacha"
)

// Feature serves the spin, spin10 and pity commands
type Feature struct {
	uowFactory     application.UnitOfWorkFactory
	workflow       *application.GachaWorkflow
	animationDelay time.Duration
	rng            domaingacha.RandomSource
}

// New creates the gacha feature. animationDelay is how long the loading GIF stays up
func New(uowFactory application.UnitOfWorkFactory, workflow *application.GachaWorkflow, animationDelay time.Duration) *Feature {
	return &Feature{
		uowFactory:     uowFactory,
		workflow:       workflow,
		animationDelay: animationDelay,
		rng:            domaingacha.DefaultRNG(),
	}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "spin",
			Description: "Draw one prize (needs the ticket role)",
			Run:         func(c *common.CommandContext) error { return f.handleSpin(c, 1) },
		},
		{
			Name:        "spin10",
			Description: "Draw ten prizes (needs the x10 ticket role)",
			Run:         func(c *common.CommandContext) error { return f.handleSpin(c, 10) },
		},
		{
			Name:        "pity",
			Description: "Show your pity counter and 50/50 status",
			Run:         f.handlePity,
		},
	}
}
