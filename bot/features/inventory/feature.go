package inventory

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the collectable inventory commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// New creates the inventory feature
func New(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "inventory",
			Aliases:     []string{"inv"},
			Description: "Show your collectables and their progress",
			Run:         f.handleInventory,
		},
		{
			Name:        "resetcollectable",
			Usage:       "<item> <@user>",
			Description: "Clear one user's copies of a collectable",
			AdminOnly:   true,
			Run:         f.handleReset,
		},
	}
}
