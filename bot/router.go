package bot

import (
	"fmt"
	"strings"

	"gachabot/bot/common"
	"gachabot/infrastructure/observability"
)

// Router maps command names and aliases to feature commands
type Router struct {
	commands map[string]*common.Command
	ordered  []*common.Command
	isAdmin  func(c *common.CommandContext) bool
}

// NewRouter creates an empty router. isAdmin decides access to admin-only commands
func NewRouter(isAdmin func(c *common.CommandContext) bool) *Router {
	return &Router{
		commands: make(map[string]*common.Command),
		isAdmin:  isAdmin,
	}
}

// Register adds commands. Names and aliases are case-insensitive and must be unique
func (r *Router) Register(cmds ...common.Command) error {
	for i := range cmds {
		cmd := &cmds[i]
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			key := strings.ToLower(name)
			if existing, ok := r.commands[key]; ok {
				return fmt.Errorf("command name %q already registered by %s", key, existing.Name)
			}
			r.commands[key] = cmd
		}
		r.ordered = append(r.ordered, cmd)
	}
	return nil
}

// Lookup finds a command by name or alias
func (r *Router) Lookup(name string) (*common.Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns the registered commands in registration order
func (r *Router) Commands() []*common.Command {
	return r.ordered
}

// Dispatch runs the command named by c.Name. handled is false for unknown names
func (r *Router) Dispatch(c *common.CommandContext) (handled bool, err error) {
	cmd, ok := r.Lookup(c.Name)
	if !ok {
		return false, nil
	}

	outcome := observability.OutcomeOK
	defer observability.GetMetrics().MeasureCommand(cmd.Name)(&outcome)

	if cmd.AdminOnly && (r.isAdmin == nil || !r.isAdmin(c)) {
		err = common.NewUserError("Only administrators can use this command.", "admin command refused")
	} else {
		err = cmd.Run(c)
	}
	outcome = common.Outcome(err)
	return true, err
}
