package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/config"
	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *bridge.Client

	appVersion = "dev"

	// Command flags
	filterExpr string
	preset     string
	statusFlag string
	typeFlag   string
	limitFlag  int
	allPages   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tasks-console",
	Short: "A console for the User Tasks Bridge",
	Long: `tasks-console is a CLI for the User Tasks Bridge, the human-task inbox
of the workflow engine. It lets users list, claim, complete and cancel
their tasks, and gives administrators task assignment, audit history and
user/group management.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build metadata injected by the linker.
func SetVersion(version, buildTime string) {
	appVersion = version
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the bridge client.
// One client is built per invocation; there is no shared client cache.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client, err = bridge.NewClient(
		cmd.Context(),
		cfg.Bridge.URL,
		cfg.Bridge.TenantID,
		cfg.Bridge.AccessToken,
		logger,
		bridge.WithUserAgent("tasks-console/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create bridge client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your assigned and claimable tasks",
	Long:  `List the tasks assigned to you or your groups, optionally narrowed by status, type or a filter expression.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringVarP(&statusFlag, "status", "s", "", "filter by status (UNASSIGNED/ASSIGNED/DONE/CANCELLED)")
	listCmd.Flags().StringVarP(&typeFlag, "type", "t", "", "filter by task definition name")
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "page size (default from config)")
	listCmd.Flags().BoolVar(&allPages, "all", false, "fetch every page, following bookmarks")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskFilter, err := getTaskFilter()
	if err != nil {
		return err
	}

	limit := limitFlag
	if limit <= 0 {
		limit = cfg.List.Limit
	}

	req := bridge.ListUserTasksRequest{
		Limit:  limit,
		Status: bridge.UserTaskStatus(strings.ToUpper(statusFlag)),
		Type:   typeFlag,
	}

	var tasks []bridge.UserTask
	for {
		page, err := client.ListUserTasks(ctx, req)
		if err != nil {
			return err
		}
		tasks = append(tasks, page.UserTasks...)

		if !allPages || !page.HasMorePages() {
			break
		}
		req.Bookmark = *page.Bookmark
	}

	if taskFilter != nil {
		tasks, err = taskFilter.Apply(tasks)
		if err != nil {
			return err
		}
	}

	displayTasks(tasks)
	return nil
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <wf-run-id> <task-id>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := client.GetUserTask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		displayTaskDetail(detail)
		return nil
	},
}

// claimCmd represents the claim command
var claimCmd = &cobra.Command{
	Use:   "claim <wf-run-id> <task-id>",
	Short: "Claim an unassigned task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ClaimUserTask(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Claimed task %s/%s\n", args[0], args[1])
		return nil
	},
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel <wf-run-id> <task-id>",
	Short: "Cancel a task assigned to you",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.CancelUserTask(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Cancelled task %s/%s\n", args[0], args[1])
		return nil
	},
}

var completeFields []string

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete <wf-run-id> <task-id>",
	Short: "Complete a task by submitting its result fields",
	Long: `Complete a task. Result fields are passed as repeated --field name=value
flags and are coerced to the types the task definition declares.`,
	Args: cobra.ExactArgs(2),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().StringArrayVar(&completeFields, "field", nil, "result field as name=value (repeatable)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wfRunID, taskID := args[0], args[1]

	// The task detail carries the field schema used to type the values.
	detail, err := client.GetUserTask(ctx, wfRunID, taskID)
	if err != nil {
		return err
	}

	results, err := parseFieldValues(detail.Fields, completeFields)
	if err != nil {
		return err
	}

	def := bridge.UserTaskDef{Name: detail.UserTaskDefName, Fields: detail.Fields}
	if err := def.ValidateResult(results); err != nil {
		return err
	}

	if err := client.CompleteUserTask(ctx, wfRunID, taskID, results); err != nil {
		return err
	}

	fmt.Printf("✓ Completed task %s/%s\n", wfRunID, taskID)
	return nil
}

// commentCmd groups the task comment operations.
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage task comments",
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}

var commentAddCmd = &cobra.Command{
	Use:   "add <wf-run-id> <task-id> <text>",
	Short: "Add a comment to a task",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.PostTaskComment(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("✓ Comment added")
		return nil
	},
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <wf-run-id> <task-id> <comment-id> <text>",
	Short: "Edit one of your comments on a task",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.EditTaskComment(cmd.Context(), args[0], args[1], args[2], args[3]); err != nil {
			return err
		}
		fmt.Println("✓ Comment updated")
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <wf-run-id> <task-id> <comment-id>",
	Short: "Delete one of your comments from a task",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteTaskComment(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("✓ Comment deleted")
		return nil
	},
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the bridge",
	Long:  `Test the connection to the User Tasks Bridge and display the tenant's public configuration.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to bridge at %s (tenant %s)...\n", cfg.Bridge.URL, cfg.Bridge.TenantID)

	// Connection is already tested during client creation
	fmt.Println("✓ Connection successful!")

	info, err := client.Init(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch tenant info: %w", err)
	}

	if info.AuthServerURL != "" {
		fmt.Printf("\nIdentity provider:\n")
		fmt.Printf("- Auth server: %s\n", info.AuthServerURL)
		fmt.Printf("- Realm: %s\n", info.Realm)
		fmt.Printf("- Client ID: %s\n", info.ClientID)
	}

	return nil
}

// getTaskFilter resolves the filter expression, preferring the command
// line over a named preset, and compiles it. Nil when no filter is set.
func getTaskFilter() (*filter.TaskFilter, error) {
	expression := filterExpr
	if expression == "" && preset != "" {
		presetExpr, ok := cfg.Filter[preset]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expression = presetExpr
	}

	if expression == "" {
		return nil, nil
	}

	compiled, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return compiled, nil
}

// displayTasks prints a task listing.
func displayTasks(tasks []bridge.UserTask) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found matching the criteria.")
		return
	}

	fmt.Printf("\nFound %d tasks:\n", len(tasks))
	fmt.Println(strings.Repeat("-", 80))

	for _, task := range tasks {
		fmt.Printf("• %s  %s/%s  [%s]\n", task.UserTaskDefName, task.WfRunID, task.ID, task.Status)
		if !cfg.List.ShowDetails {
			continue
		}
		if task.User != nil {
			name := task.User.DisplayName()
			if name == "" {
				name = task.User.ID
			}
			if !task.User.Valid {
				name += " (no longer exists)"
			}
			fmt.Printf("  Assignee: %s\n", name)
		}
		if task.UserGroup != nil {
			name := task.UserGroup.Name
			if name == "" {
				name = task.UserGroup.ID
			}
			if !task.UserGroup.Valid {
				name += " (no longer exists)"
			}
			fmt.Printf("  Group: %s\n", name)
		}
		if task.Notes != "" {
			fmt.Printf("  Notes: %s\n", task.Notes)
		}
		if !task.ScheduledTime.IsZero() {
			fmt.Printf("  Scheduled: %s\n", task.ScheduledTime.Format("2006-01-02 15:04"))
		}
	}
}

// displayTaskDetail prints a single task with its fields and history.
func displayTaskDetail(detail *bridge.UserTaskDetail) {
	displayTasks([]bridge.UserTask{detail.UserTask})

	if len(detail.Fields) > 0 {
		fmt.Printf("\nFields:\n")
		for _, field := range detail.Fields {
			required := ""
			if field.Required {
				required = " (required)"
			}
			fmt.Printf("  • %s: %s%s\n", field.Name, field.Type, required)
		}
	}

	if len(detail.Results) > 0 {
		fmt.Printf("\nResults:\n")
		for name, value := range detail.Results {
			fmt.Printf("  • %s = %v\n", name, value.Value)
		}
	}

	displayAuditEvents(detail.Events)
}

// displayAuditEvents prints a task's history, oldest first.
func displayAuditEvents(events []bridge.AuditEvent) {
	if len(events) == 0 {
		return
	}

	fmt.Printf("\nHistory:\n")
	for _, event := range events {
		ts := event.Time.Format("2006-01-02 15:04")
		switch {
		case event.Executed != nil:
			fmt.Printf("  %s  completed by %s\n", ts, event.Executed.UserID)
		case event.Assigned != nil:
			target := event.Assigned.NewUserID
			if target == "" {
				target = event.Assigned.NewUserGroupID
			}
			fmt.Printf("  %s  assigned to %s\n", ts, target)
		case event.Cancelled != nil:
			fmt.Printf("  %s  cancelled by %s\n", ts, event.Cancelled.UserID)
		case event.Commented != nil:
			fmt.Printf("  %s  %s commented: %s\n", ts, event.Commented.UserID, event.Commented.Comment)
		case event.CommentEdited != nil:
			fmt.Printf("  %s  %s edited a comment: %s\n", ts, event.CommentEdited.UserID, event.CommentEdited.Comment)
		}
	}
}
