package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"timeflow/internal/api"
	"timeflow/internal/config"
	"timeflow/internal/domain"
	"timeflow/internal/logging"
	"timeflow/internal/repository"
)

// RootCommand represents the base command when called without subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	gateway repository.Gateway
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "timeflow",
		Short: "Track time across clients, projects, and tasks",
		Long: `timeflow is a command-line time tracker.

EXAMPLES:
  timeflow client add "Acme"               # Create a client
  timeflow project add "Website" --client <id>
  timeflow start <project-id> "deep work"  # Start the timer (stops any running entry)
  timeflow status                          # What is running, and for how long
  timeflow stop                            # Stop the timer
  timeflow log --day 2026-03-02            # Entries for one day
  timeflow report week                     # Totals by client for this week
  timeflow export month --file march.csv   # CSV export

CONFIGURATION:
  Flags take precedence over environment variables, which take precedence
  over a .env file and the built-in defaults.

    TIMEFLOW_STORAGE_BACKEND   sqlite or memory (default: sqlite)
    TIMEFLOW_DB_DIR            Database directory (default: ~/.timeflow)
    TIMEFLOW_DB_FILENAME       Database filename (default: timeflow.db)
    TIMEFLOW_DB_WRITE_TIMEOUT  Gateway write timeout (default: 10s)
    TIMEFLOW_USER              Local profile user id (default: local)
    TIMEFLOW_APP_TIMEOUT       Per-command timeout (default: 60s)
    TIMEFLOW_DEBUG             Enable debug logging (default: off)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.openSession(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.closeSession()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs forwards to the underlying cobra command (used by tests)
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// openSession builds the gateway and API from the effective configuration
// and signs the local profile in.
func (r *RootCommand) openSession(ctx context.Context) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	gateway, err := config.CreateGateway(r.config)
	if err != nil {
		return err
	}

	identity := &api.LocalIdentity{UserID: r.config.Session.UserID}
	apiInstance := api.NewWithTimeout(gateway, identity, r.config.Storage.WriteTimeout)

	signCtx, cancel := context.WithTimeout(ctx, r.getAppTimeout())
	defer cancel()
	if err := apiInstance.SignIn(signCtx); err != nil {
		gateway.Close()
		return NewErrorHandler().Handle("load session", err)
	}

	r.gateway = gateway
	r.app = NewApp(apiInstance, r.config)
	logging.Debugf("cli: session open for %s", r.config.Session.UserID)
	return nil
}

func (r *RootCommand) closeSession() error {
	if r.gateway == nil {
		return nil
	}
	err := r.gateway.Close()
	r.gateway = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("storage-backend", "", "Storage backend, sqlite or memory (overrides TIMEFLOW_STORAGE_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides TIMEFLOW_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TIMEFLOW_DB_FILENAME)")
	flags.Duration("db-write-timeout", 0, "Gateway write timeout (overrides TIMEFLOW_DB_WRITE_TIMEOUT)")
	flags.String("user", "", "Local profile user id (overrides TIMEFLOW_USER)")
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TIMEFLOW_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TIMEFLOW_APP_VERBOSE)")
}

// getConfigFromFlags updates the configuration with values from flags
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()

	if backend, _ := flags.GetString("storage-backend"); backend != "" {
		r.config.Storage.Backend = backend
	}
	if dir, _ := flags.GetString("db-dir"); dir != "" {
		r.config.Storage.Dir = dir
	}
	if filename, _ := flags.GetString("db-filename"); filename != "" {
		r.config.Storage.Filename = filename
	}
	if timeout, _ := flags.GetDuration("db-write-timeout"); timeout > 0 {
		r.config.Storage.WriteTimeout = timeout
	}
	if user, _ := flags.GetString("user"); user != "" {
		r.config.Session.UserID = user
	}
	if timeout, _ := flags.GetDuration("app-timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}

func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.timerCommands()...,
	)
	r.cmd.AddCommand(
		r.entryCommands()...,
	)
	r.cmd.AddCommand(
		r.clientCommand(),
		r.projectCommand(),
		r.taskCommand(),
	)
	r.cmd.AddCommand(
		r.reportCommand(),
		r.calendarCommand(),
		r.exportCommand(),
	)
}

func (r *RootCommand) timerCommands() []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start <project-id> [description]",
		Short: "Start the timer on a project",
		Long:  "Start tracking time on a project. A running entry is stopped first, ending exactly when the new one starts.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			taskID, _ := cmd.Flags().GetString("task")
			return NewStartCommand(r.app).Execute(ctx, args, taskID)
		},
	}
	startCmd.Flags().String("task", "", "Link the entry to a task")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Long:  "Stop the running timer. Does nothing when the timer is idle.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStopCommand(r.app).Execute(ctx)
		},
	}

	discardCmd := &cobra.Command{
		Use:   "discard",
		Short: "Discard the running entry",
		Long:  "Delete the running entry without recording any time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDiscardCommand(r.app).Execute(ctx)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the timer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStatusCommand(r.app).Execute(ctx)
		},
	}

	amendCmd := &cobra.Command{
		Use:   "amend",
		Short: "Change the running entry without touching its timing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			projectID, _ := cmd.Flags().GetString("project")
			description, _ := cmd.Flags().GetString("description")
			taskID, _ := cmd.Flags().GetString("task")
			clearTask, _ := cmd.Flags().GetBool("clear-task")
			return NewAmendCommand(r.app).Execute(ctx, projectID, description, taskID, clearTask)
		},
	}
	amendCmd.Flags().String("project", "", "Move the entry to another project")
	amendCmd.Flags().String("description", "", "Replace the description")
	amendCmd.Flags().String("task", "", "Link to a task")
	amendCmd.Flags().Bool("clear-task", false, "Remove the task link")

	return []*cobra.Command{startCmd, stopCmd, discardCmd, statusCmd, amendCmd}
}

func (r *RootCommand) entryCommands() []*cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Record a past time range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			description, _ := cmd.Flags().GetString("description")
			start, _ := cmd.Flags().GetString("from")
			end, _ := cmd.Flags().GetString("to")
			taskID, _ := cmd.Flags().GetString("task")
			return NewAddEntryCommand(r.app).Execute(ctx, args[0], description, start, end, taskID)
		},
	}
	addCmd.Flags().String("description", "", "Entry description")
	addCmd.Flags().String("from", "", `Start, "YYYY-MM-DD HH:MM" (required)`)
	addCmd.Flags().String("to", "", `End, "YYYY-MM-DD HH:MM" (required)`)
	addCmd.Flags().String("task", "", "Link the entry to a task")
	addCmd.MarkFlagRequired("from")
	addCmd.MarkFlagRequired("to")

	editCmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			edit := EntryEdit{}
			edit.ProjectID, _ = cmd.Flags().GetString("project")
			edit.Description, _ = cmd.Flags().GetString("description")
			edit.HasDesc = cmd.Flags().Changed("description")
			edit.Start, _ = cmd.Flags().GetString("from")
			edit.End, _ = cmd.Flags().GetString("to")
			return NewEditEntryCommand(r.app).Execute(ctx, args[0], edit)
		},
	}
	editCmd.Flags().String("project", "", "Move the entry to another project")
	editCmd.Flags().String("description", "", "Replace the description")
	editCmd.Flags().String("from", "", `New start, "YYYY-MM-DD HH:MM"`)
	editCmd.Flags().String("to", "", `New end, "YYYY-MM-DD HH:MM"`)

	rmCmd := &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewRemoveEntryCommand(r.app).Execute(ctx, args[0])
		},
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			day, _ := cmd.Flags().GetString("day")
			projectID, _ := cmd.Flags().GetString("project")
			return NewLogCommand(r.app).Execute(ctx, day, projectID)
		},
	}
	logCmd.Flags().String("day", "", `Narrow to one day, "YYYY-MM-DD"`)
	logCmd.Flags().String("project", "", "Narrow to one project")

	return []*cobra.Command{addCmd, editCmd, rmCmd, logCmd}
}

func (r *RootCommand) clientCommand() *cobra.Command {
	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	clientCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).Add(ctx, args[0])
		},
	})
	clientCmd.AddCommand(&cobra.Command{
		Use:   "rm <client-id>",
		Short: "Delete a client (its projects are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).Remove(ctx, args[0])
		},
	})
	clientCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).List(ctx)
		},
	})

	return clientCmd
}

func (r *RootCommand) projectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			clientID, _ := cmd.Flags().GetString("client")
			color, _ := cmd.Flags().GetString("color")
			shared, _ := cmd.Flags().GetBool("shared")
			return NewProjectCommand(r.app).Add(ctx, args[0], clientID, color, shared)
		},
	}
	addCmd.Flags().String("client", "", "Owning client id (required)")
	addCmd.Flags().String("color", "", "Display color, #rrggbb")
	addCmd.Flags().Bool("shared", false, "Visible to assigned users")
	addCmd.MarkFlagRequired("client")
	projectCmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			name, _ := cmd.Flags().GetString("name")
			clientID, _ := cmd.Flags().GetString("client")
			color, _ := cmd.Flags().GetString("color")
			var shared *bool
			if cmd.Flags().Changed("shared") {
				value, _ := cmd.Flags().GetBool("shared")
				shared = &value
			}
			return NewProjectCommand(r.app).Edit(ctx, args[0], name, clientID, color, shared)
		},
	}
	editCmd.Flags().String("name", "", "Rename the project")
	editCmd.Flags().String("client", "", "Move to another client")
	editCmd.Flags().String("color", "", "Display color, #rrggbb")
	editCmd.Flags().Bool("shared", false, "Visible to assigned users")
	projectCmd.AddCommand(editCmd)

	projectCmd.AddCommand(&cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project (its entries are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewProjectCommand(r.app).Remove(ctx, args[0])
		},
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewProjectCommand(r.app).List(ctx)
		},
	})

	return projectCmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			projectID, _ := cmd.Flags().GetString("project")
			description, _ := cmd.Flags().GetString("description")
			assignedTo, _ := cmd.Flags().GetString("assign")
			return NewTaskCommand(r.app).Add(ctx, projectID, args[0], description, assignedTo)
		},
	}
	addCmd.Flags().String("project", "", "Owning project id (required)")
	addCmd.Flags().String("description", "", "Task description")
	addCmd.Flags().String("assign", "", "Assign to a user id")
	addCmd.MarkFlagRequired("project")
	taskCmd.AddCommand(addCmd)

	statusCmd := &cobra.Command{
		Use:   "status <task-id> <pending|in_progress|completed>",
		Short: "Move a task to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTaskCommand(r.app).SetStatus(ctx, args[0], domain.TaskStatus(args[1]))
		},
	}
	taskCmd.AddCommand(statusCmd)

	taskCmd.AddCommand(&cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTaskCommand(r.app).SetStatus(ctx, args[0], domain.TaskStatusCompleted)
		},
	})
	taskCmd.AddCommand(&cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTaskCommand(r.app).Remove(ctx, args[0])
		},
	})
	taskCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTaskCommand(r.app).List(ctx)
		},
	})

	return taskCmd
}

func (r *RootCommand) reportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report [day|week|month]",
		Short: "Totals by client or project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			period := ""
			if len(args) == 1 {
				period = args[0]
			}
			byProject, _ := cmd.Flags().GetBool("by-project")
			return NewReportCommand(r.app).Execute(ctx, period, byProject)
		},
	}
	reportCmd.Flags().Bool("by-project", false, "Group by project instead of client")
	return reportCmd
}

func (r *RootCommand) calendarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [day|week|month]",
		Short: "Per-day totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			period := ""
			if len(args) == 1 {
				period = args[0]
			}
			return NewCalendarCommand(r.app).Execute(ctx, period)
		},
	}
}

func (r *RootCommand) exportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [day|week|month]",
		Short: "Export entries as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			period := ""
			if len(args) == 1 {
				period = args[0]
			}
			path, _ := cmd.Flags().GetString("file")
			return NewExportCommand(r.app).Execute(ctx, period, path)
		},
	}
	exportCmd.Flags().String("file", "", "Write to a file instead of stdout")
	return exportCmd
}
