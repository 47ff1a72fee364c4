package banner

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the banner, secretbanner and iteminfo commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	cards      *CardGenerator
}

// New creates the banner feature
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cards:      NewCardGenerator(),
	}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "banner",
			Description: "Show the prize pool and the odds of every item",
			Run:         func(c *common.CommandContext) error { return f.handleBanner(c, false) },
		},
		{
			Name:        "secretbanner",
			Description: "Show the odds of the secret items",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleBanner(c, true) },
		},
		{
			Name:        "iteminfo",
			Usage:       "<name>",
			Description: "Show the details of one item",
			Run:         f.handleItemInfo,
		},
	}
}
