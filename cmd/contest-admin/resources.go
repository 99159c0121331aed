package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/stepcontest/contest-admin/internal/domain/model"
)

// listFlags are shared by the paged list subcommands.
type listFlags struct {
	Page    int
	Size    int
	Filters []string
}

func (l *listFlags) register(fs *pflag.FlagSet, defaultSize int) {
	fs.IntVar(&l.Page, "page", 1, "Page number")
	fs.IntVar(&l.Size, "size", defaultSize, "Page size")
	fs.StringArrayVar(&l.Filters, "filter", nil, "Filter as key=value (repeatable)")
}

func (l *listFlags) params() (model.ListParams, error) {
	filters, err := parseFilters(l.Filters)
	if err != nil {
		return model.ListParams{}, err
	}
	return model.ListParams{Page: l.Page, Size: l.Size, Filters: filters}, nil
}

// getCommand builds "<group> get ID" around fetch.
func getCommand(name string, fetch func(cc *commandContext, id int64) (any, error)) commandFn {
	return func(cc *commandContext, args []string) error {
		fs := newFlagSet(name, cc)
		var out outputFlags
		out.register(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		id, err := positionalID(fs, "ID")
		if err != nil {
			return err
		}
		v, err := fetch(cc, id)
		if err != nil {
			return err
		}
		return out.render(cc, v)
	}
}

// deleteCommand builds "<group> delete ID" with a confirmation prompt.
func deleteCommand(name, noun string, remove func(cc *commandContext, id int64) error) commandFn {
	return func(cc *commandContext, args []string) error {
		fs := newFlagSet(name, cc)
		var confirm confirmFlags
		confirm.register(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		id, err := positionalID(fs, "ID")
		if err != nil {
			return err
		}
		if err := confirm.confirm(cc, fmt.Sprintf("delete %s %d", noun, id)); err != nil {
			return err
		}
		if err := remove(cc, id); err != nil {
			return err
		}
		return writef(cc.Stdout, "Deleted %s %d.\n", noun, id)
	}
}

// writeCommand builds create (withID false) and update (withID true) subcommands
// that read a JSON body into a fresh T.
func writeCommand[T any](name string, withID bool, send func(cc *commandContext, id int64, body T) (any, error)) commandFn {
	return func(cc *commandContext, args []string) error {
		fs := newFlagSet(name, cc)
		var (
			out     outputFlags
			payload payloadFlags
		)
		payload.register(fs)
		out.register(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}

		var id int64
		if withID {
			parsed, err := positionalID(fs, "ID")
			if err != nil {
				return err
			}
			id = parsed
		} else if fs.NArg() > 0 {
			return usagef("%s takes no positional arguments", name)
		}

		var body T
		if err := payload.decode(cc, &body); err != nil {
			return err
		}
		v, err := send(cc, id, body)
		if err != nil {
			return err
		}
		return out.render(cc, v)
	}
}

func runContests(cc *commandContext, args []string) error {
	return dispatch("contests", map[string]subcommand{
		"list": {
			usage:       "list [--page N] [--size N] [--filter key=value]",
			description: "List contests",
			run:         runContestList,
		},
		"get": {
			usage:       "get ID",
			description: "Show a contest with its prize rules",
			run: getCommand("contests get", func(cc *commandContext, id int64) (any, error) {
				return cc.App.Services.Contests.Get(cc.Ctx, id)
			}),
		},
		"create": {
			usage:       "create --data JSON|--file PATH",
			description: "Create a contest",
			run: writeCommand("contests create", false, func(cc *commandContext, _ int64, body model.ContestCreate) (any, error) {
				return cc.App.Services.Contests.Create(cc.Ctx, body)
			}),
		},
		"update": {
			usage:       "update ID --data JSON|--file PATH",
			description: "Apply a partial update to a contest",
			run: writeCommand("contests update", true, func(cc *commandContext, id int64, body model.ContestUpdate) (any, error) {
				return cc.App.Services.Contests.Update(cc.Ctx, id, body)
			}),
		},
		"delete": {
			usage:       "delete ID [--yes]",
			description: "Delete a contest",
			run: deleteCommand("contests delete", "contest", func(cc *commandContext, id int64) error {
				return cc.App.Services.Contests.Delete(cc.Ctx, id)
			}),
		},
	})(cc, args)
}

func runContestList(cc *commandContext, args []string) error {
	fs := newFlagSet("contests list", cc)
	var (
		list listFlags
		out  outputFlags
	)
	list.register(fs, 20)
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	params, err := list.params()
	if err != nil {
		return err
	}
	contests, err := cc.App.Services.Contests.List(cc.Ctx, params)
	if err != nil {
		return err
	}
	return out.render(cc, contests)
}

func runPrizeRules(cc *commandContext, args []string) error {
	return dispatch("prize-rules", map[string]subcommand{
		"list": {
			usage:       "list CONTEST_ID",
			description: "List the prize rules of a contest",
			run:         runPrizeRuleList,
		},
		"get": {
			usage:       "get ID",
			description: "Show a prize rule",
			run: getCommand("prize-rules get", func(cc *commandContext, id int64) (any, error) {
				return cc.App.Services.PrizeRules.Get(cc.Ctx, id)
			}),
		},
		"create": {
			usage:       "create --data JSON|--file PATH",
			description: "Create a prize rule",
			run: writeCommand("prize-rules create", false, func(cc *commandContext, _ int64, body model.PrizeRuleCreate) (any, error) {
				return cc.App.Services.PrizeRules.Create(cc.Ctx, body)
			}),
		},
		"update": {
			usage:       "update ID --data JSON|--file PATH",
			description: "Apply a partial update to a prize rule",
			run: writeCommand("prize-rules update", true, func(cc *commandContext, id int64, body model.PrizeRuleUpdate) (any, error) {
				return cc.App.Services.PrizeRules.Update(cc.Ctx, id, body)
			}),
		},
		"delete": {
			usage:       "delete ID [--yes]",
			description: "Delete a prize rule",
			run: deleteCommand("prize-rules delete", "prize rule", func(cc *commandContext, id int64) error {
				return cc.App.Services.PrizeRules.Delete(cc.Ctx, id)
			}),
		},
	})(cc, args)
}

func runPrizeRuleList(cc *commandContext, args []string) error {
	fs := newFlagSet("prize-rules list", cc)
	var out outputFlags
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	contestID, err := positionalID(fs, "CONTEST_ID")
	if err != nil {
		return err
	}
	rules, err := cc.App.Services.PrizeRules.List(cc.Ctx, contestID)
	if err != nil {
		return err
	}
	return out.render(cc, rules)
}

func runClaims(cc *commandContext, args []string) error {
	return dispatch("claims", map[string]subcommand{
		"list": {
			usage:       "list [--status PENDING|COMPLETED|REJECTED] [--page N] [--size N] [--filter key=value]",
			description: "List prize claims",
			run:         runClaimList,
		},
		"status": {
			usage:       "status ID PENDING|COMPLETED|REJECTED",
			description: "Change the status of a claim",
			run:         runClaimStatus,
		},
		"assign": {
			usage:       "assign ID (--agent AGENT_ID | --unassign)",
			description: "Assign a service agent to a claim",
			run:         runClaimAssign,
		},
	})(cc, args)
}

func runClaimList(cc *commandContext, args []string) error {
	fs := newFlagSet("claims list", cc)
	var (
		list   listFlags
		out    outputFlags
		status string
	)
	list.register(fs, 50)
	fs.StringVar(&status, "status", "", "Only claims in this status")
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	params, err := list.params()
	if err != nil {
		return err
	}
	if status != "" {
		parsed, ok := model.ParseClaimStatus(status)
		if !ok {
			return usagef("unknown claim status %q", status)
		}
		if params.Filters == nil {
			params.Filters = map[string]any{}
		}
		params.Filters["status"] = string(parsed)
	}
	claims, err := cc.App.Services.Claims.List(cc.Ctx, params)
	if err != nil {
		return err
	}
	return out.render(cc, claims)
}

func runClaimStatus(cc *commandContext, args []string) error {
	fs := newFlagSet("claims status", cc)
	var out outputFlags
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usagef("claims status requires ID and STATUS")
	}
	id, err := parseID(fs.Arg(0), "ID")
	if err != nil {
		return err
	}
	status, ok := model.ParseClaimStatus(fs.Arg(1))
	if !ok {
		return usagef("unknown claim status %q", fs.Arg(1))
	}
	claim, err := cc.App.Services.Claims.UpdateStatus(cc.Ctx, id, status)
	if err != nil {
		return err
	}
	return out.render(cc, claim)
}

func runClaimAssign(cc *commandContext, args []string) error {
	fs := newFlagSet("claims assign", cc)
	var (
		out      outputFlags
		agentID  int64
		unassign bool
	)
	fs.Int64Var(&agentID, "agent", 0, "Service agent ID")
	fs.BoolVar(&unassign, "unassign", false, "Remove the assigned agent")
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := positionalID(fs, "ID")
	if err != nil {
		return err
	}

	var agent *int64
	switch {
	case unassign && agentID != 0:
		return usagef("use either --agent or --unassign")
	case unassign:
	case agentID > 0:
		agent = &agentID
	default:
		return usagef("claims assign requires --agent AGENT_ID or --unassign")
	}

	claim, err := cc.App.Services.Claims.AssignAgent(cc.Ctx, id, agent)
	if err != nil {
		return err
	}
	return out.render(cc, claim)
}

func runUsers(cc *commandContext, args []string) error {
	return dispatch("users", map[string]subcommand{
		"get": {
			usage:       "get ID",
			description: "Show a participant account",
			run: getCommand("users get", func(cc *commandContext, id int64) (any, error) {
				return cc.App.Services.Users.Get(cc.Ctx, id)
			}),
		},
		"update": {
			usage:       "update ID --data JSON|--file PATH",
			description: "Apply a partial update to a participant account",
			run: writeCommand("users update", true, func(cc *commandContext, id int64, body model.AdminUserUpdate) (any, error) {
				return cc.App.Services.Users.Update(cc.Ctx, id, body)
			}),
		},
	})(cc, args)
}

func runRanking(cc *commandContext, args []string) error {
	fs := newFlagSet("ranking", cc)
	var (
		out       outputFlags
		topN      int
		tailCount int
	)
	fs.IntVar(&topN, "top", 0, "Rows from the top of the leaderboard (default 10)")
	fs.IntVar(&tailCount, "tail", 0, "Rows from the bottom of the leaderboard (default 5)")
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	contestID, err := positionalID(fs, "CONTEST_ID")
	if err != nil {
		return err
	}
	ranking, err := cc.App.Services.Leaderboard.ContestRanking(cc.Ctx, contestID, topN, tailCount)
	if err != nil {
		return err
	}
	return out.render(cc, ranking)
}

func runRegions(cc *commandContext, args []string) error {
	fs := newFlagSet("regions", cc)
	var (
		out   outputFlags
		level string
	)
	fs.StringVar(&level, "level", "", "Only regions of this level")
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usagef("regions takes no positional arguments")
	}

	var (
		regions []model.Region
		err     error
	)
	if level == "" {
		regions, err = cc.App.Services.Regions.ListAll(cc.Ctx)
	} else {
		parsed, ok := model.ParseRegionLevel(level)
		if !ok {
			return usagef("unknown region level %q", level)
		}
		regions, err = cc.App.Services.Regions.ListByLevel(cc.Ctx, parsed)
	}
	if err != nil {
		return err
	}
	return out.render(cc, regions)
}

func runAgents(cc *commandContext, args []string) error {
	return dispatch("agents", map[string]subcommand{
		"list": {
			usage:       "list [--active]",
			description: "List service agents",
			run:         runAgentList,
		},
		"get": {
			usage:       "get ID",
			description: "Show a service agent",
			run: getCommand("agents get", func(cc *commandContext, id int64) (any, error) {
				return cc.App.Services.Agents.Get(cc.Ctx, id)
			}),
		},
		"create": {
			usage:       "create --data JSON|--file PATH",
			description: "Create a service agent",
			run: writeCommand("agents create", false, func(cc *commandContext, _ int64, body model.ServiceAgentCreate) (any, error) {
				return cc.App.Services.Agents.Create(cc.Ctx, body)
			}),
		},
		"update": {
			usage:       "update ID --data JSON|--file PATH",
			description: "Apply a partial update to a service agent",
			run: writeCommand("agents update", true, func(cc *commandContext, id int64, body model.ServiceAgentUpdate) (any, error) {
				return cc.App.Services.Agents.Update(cc.Ctx, id, body)
			}),
		},
		"delete": {
			usage:       "delete ID [--yes]",
			description: "Delete a service agent",
			run: deleteCommand("agents delete", "service agent", func(cc *commandContext, id int64) error {
				return cc.App.Services.Agents.Delete(cc.Ctx, id)
			}),
		},
	})(cc, args)
}

func runAgentList(cc *commandContext, args []string) error {
	fs := newFlagSet("agents list", cc)
	var (
		out    outputFlags
		active bool
	)
	fs.BoolVar(&active, "active", false, "Only agents accepting claims")
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		agents []model.ServiceAgent
		err    error
	)
	if active {
		agents, err = cc.App.Services.Agents.ListActive(cc.Ctx)
	} else {
		agents, err = cc.App.Services.Agents.List(cc.Ctx)
	}
	if err != nil {
		return err
	}
	return out.render(cc, agents)
}

func runSystemConfig(cc *commandContext, args []string) error {
	return dispatch("config", map[string]subcommand{
		"get": {
			usage:       "get",
			description: "Show system configuration",
			run:         runConfigGet,
		},
		"set": {
			usage:       "set --data JSON|--file PATH",
			description: "Update system configuration (partial document)",
			run: writeCommand("config set", false, func(cc *commandContext, _ int64, body model.SystemConfigUpdate) (any, error) {
				return cc.App.Services.System.UpdateConfig(cc.Ctx, body)
			}),
		},
	})(cc, args)
}

func runConfigGet(cc *commandContext, args []string) error {
	fs := newFlagSet("config get", cc)
	var out outputFlags
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	cfg, err := cc.App.Services.System.GetConfig(cc.Ctx)
	if err != nil {
		return err
	}
	return out.render(cc, cfg)
}

func runOverview(cc *commandContext, args []string) error {
	fs := newFlagSet("overview", cc)
	var out outputFlags
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	overview, err := cc.App.Services.Overview.Load(cc.Ctx)
	if err != nil {
		return err
	}
	return out.render(cc, overview)
}
