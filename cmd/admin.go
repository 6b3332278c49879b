package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
)

var (
	assignUser    string
	assignGroup   string
	adminUserID   string
	adminGroupID  string
	earliestStart string
	latestStart   string
	resolveNames  bool
)

// adminCmd groups the administrator operations.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator operations on tasks, definitions and history",
}

func init() {
	rootCmd.AddCommand(adminCmd)

	adminCmd.AddCommand(adminListCmd)
	adminCmd.AddCommand(adminDetailCmd)
	adminCmd.AddCommand(adminAssignCmd)
	adminCmd.AddCommand(adminCancelCmd)
	adminCmd.AddCommand(adminCompleteCmd)
	adminCmd.AddCommand(adminDefsCmd)
}

// adminListCmd lists tasks tenant-wide with richer filters.
var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks across the whole tenant",
	RunE:  runAdminList,
}

func init() {
	adminListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	adminListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	adminListCmd.Flags().StringVarP(&statusFlag, "status", "s", "", "filter by status")
	adminListCmd.Flags().StringVarP(&typeFlag, "type", "t", "", "filter by task definition name")
	adminListCmd.Flags().StringVar(&adminUserID, "user", "", "filter by assigned user id")
	adminListCmd.Flags().StringVar(&adminGroupID, "group", "", "filter by assigned group id")
	adminListCmd.Flags().StringVar(&earliestStart, "after", "", "earliest start date (2006-01-02)")
	adminListCmd.Flags().StringVar(&latestStart, "before", "", "latest start date (2006-01-02)")
	adminListCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "page size (default from config)")
	adminListCmd.Flags().BoolVar(&allPages, "all", false, "fetch every page, following bookmarks")
	adminListCmd.Flags().BoolVar(&resolveNames, "resolve", false, "resolve assignee names via the identity provider")
}

func runAdminList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskFilter, err := getTaskFilter()
	if err != nil {
		return err
	}

	limit := limitFlag
	if limit <= 0 {
		limit = cfg.List.Limit
	}

	req := bridge.AdminListUserTasksRequest{
		Limit:       limit,
		Status:      bridge.UserTaskStatus(strings.ToUpper(statusFlag)),
		Type:        typeFlag,
		UserID:      adminUserID,
		UserGroupID: adminGroupID,
	}

	if req.EarliestStartDate, err = parseDateFlag(earliestStart); err != nil {
		return fmt.Errorf("invalid --after date: %w", err)
	}
	if req.LatestStartDate, err = parseDateFlag(latestStart); err != nil {
		return fmt.Errorf("invalid --before date: %w", err)
	}

	var tasks []bridge.UserTask
	for {
		page, err := client.AdminListUserTasks(ctx, req)
		if err != nil {
			return err
		}
		tasks = append(tasks, page.UserTasks...)

		if !allPages || !page.HasMorePages() {
			break
		}
		req.Bookmark = *page.Bookmark
	}

	if resolveNames {
		if err := client.ResolveAssignees(ctx, tasks); err != nil {
			return fmt.Errorf("failed to resolve assignees: %w", err)
		}
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

// adminDetailCmd shows any task with its audit history.
var adminDetailCmd = &cobra.Command{
	Use:   "detail <wf-run-id> <task-id>",
	Short: "Show any task with its full audit history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := client.AdminGetUserTask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		displayTaskDetail(detail)
		return nil
	},
}

// adminAssignCmd assigns any task to a user or group.
var adminAssignCmd = &cobra.Command{
	Use:   "assign <wf-run-id> <task-id>",
	Short: "Assign a task to a user or group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminAssignUserTask(cmd.Context(), args[0], args[1], assignUser, assignGroup); err != nil {
			return err
		}

		target := assignUser
		if target == "" {
			target = assignGroup
		}
		fmt.Printf("✓ Assigned task %s/%s to %s\n", args[0], args[1], target)
		return nil
	},
}

func init() {
	adminAssignCmd.Flags().StringVar(&assignUser, "user", "", "user id to assign to")
	adminAssignCmd.Flags().StringVar(&assignGroup, "group", "", "group id to assign to")
}

// adminCancelCmd cancels any task regardless of assignment.
var adminCancelCmd = &cobra.Command{
	Use:   "cancel <wf-run-id> <task-id>",
	Short: "Cancel any task regardless of assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AdminCancelUserTask(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Cancelled task %s/%s\n", args[0], args[1])
		return nil
	},
}

var adminCompleteFields []string

// adminCompleteCmd completes any task on behalf of its assignee.
var adminCompleteCmd = &cobra.Command{
	Use:   "complete <wf-run-id> <task-id>",
	Short: "Complete any task on behalf of its assignee",
	Long: `Complete any task in the tenant regardless of assignment. Result fields
are passed as repeated --field name=value flags and are coerced to the
types the task definition declares.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdminComplete,
}

func init() {
	adminCompleteCmd.Flags().StringArrayVar(&adminCompleteFields, "field", nil, "result field as name=value (repeatable)")
}

func runAdminComplete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wfRunID, taskID := args[0], args[1]

	// The admin detail carries the field schema used to type the values.
	detail, err := client.AdminGetUserTask(ctx, wfRunID, taskID)
	if err != nil {
		return err
	}

	results, err := parseFieldValues(detail.Fields, adminCompleteFields)
	if err != nil {
		return err
	}

	def := bridge.UserTaskDef{Name: detail.UserTaskDefName, Fields: detail.Fields}
	if err := def.ValidateResult(results); err != nil {
		return err
	}

	if err := client.AdminCompleteUserTask(ctx, wfRunID, taskID, results); err != nil {
		return err
	}

	fmt.Printf("✓ Completed task %s/%s\n", wfRunID, taskID)
	return nil
}

// adminDefsCmd browses task definitions.
var adminDefsCmd = &cobra.Command{
	Use:   "defs [name]",
	Short: "List task definitions, or show one definition's fields",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdminDefs,
}

func runAdminDefs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 1 {
		def, err := client.GetUserTaskDef(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", def.Name)
		for _, field := range def.Fields {
			required := ""
			if field.Required {
				required = " (required)"
			}
			fmt.Printf("  • %s: %s%s\n", field.Name, field.Type, required)
			if field.Description != "" {
				fmt.Printf("    %s\n", field.Description)
			}
		}
		return nil
	}

	req := bridge.ListUserTaskDefsRequest{Limit: cfg.List.Limit}
	var names []string
	for {
		page, err := client.ListUserTaskDefs(ctx, req)
		if err != nil {
			return err
		}
		names = append(names, page.UserTaskDefNames...)

		if !page.HasMorePages() {
			break
		}
		req.Bookmark = *page.Bookmark
	}

	if len(names) == 0 {
		fmt.Println("No task definitions found.")
		return nil
	}

	fmt.Printf("Found %d task definitions:\n", len(names))
	for _, name := range names {
		fmt.Printf("  • %s\n", name)
	}
	return nil
}

// parseDateFlag parses a 2006-01-02 date flag, nil when unset.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
