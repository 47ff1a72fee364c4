package items

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves the admin commands that manage the item pool
type Feature struct {
	uowFactory    application.UnitOfWorkFactory
	confirmations *application.ConfirmationWorkflow
}

// New creates the items feature
func New(uowFactory application.UnitOfWorkFactory, confirmations *application.ConfirmationWorkflow) *Feature {
	return &Feature{
		uowFactory:    uowFactory,
		confirmations: confirmations,
	}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "createitem",
			Usage:       "<name>",
			Description: "Add an item to the pool",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleCreate(c, false) },
		},
		{
			Name:        "createitemsecret",
			Usage:       "<name>",
			Description: "Add a secret item, hidden from the public banner",
			AdminOnly:   true,
			Run:         func(c *common.CommandContext) error { return f.handleCreate(c, true) },
		},
		{
			Name:        "edititem",
			Usage:       "<name> <field> <value>",
			Description: "Change one field of an item",
			AdminOnly:   true,
			Run:         f.handleEdit,
		},
		{
			Name:        "deleteitem",
			Usage:       "<name>",
			Description: "Remove an item and its collections (asks for confirmation)",
			AdminOnly:   true,
			Run:         f.handleDelete,
		},
		{
			Name:        "resetitems",
			Description: "Remove every item, collection and pity counter (asks for confirmation)",
			AdminOnly:   true,
			Run:         f.handleReset,
		},
	}
}
