package exchange

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the token exchange commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	workflow   *application.GachaWorkflow
}

// New creates the exchange feature
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
			Name:        "redeem",
			Aliases:     []string{"canjear"},
			Usage:       "<id>",
			Description: "Trade tokens for a reward",
			Run:         f.handleRedeem,
		},
		{
			Name:        "listexchanges",
			Description: "List the rewards you can trade tokens for",
			Run:         f.handleList,
		},
		{
			Name:        "createexchange",
			Usage:       "<reward name>",
			Description: "Add an exchange with the next free id",
			AdminOnly:   true,
			Run:         f.handleCreate,
		},
		{
			Name:        "editexchange",
			Usage:       "<id> price <1SSR 3SR ...> | <id> role [role]",
			Description: "Set the price or the role of an exchange",
			AdminOnly:   true,
			Run:         f.handleEdit,
		},
		{
			Name:        "resetexchanges",
			Description: "Remove every exchange",
			AdminOnly:   true,
			Run:         f.handleReset,
		},
	}
}
