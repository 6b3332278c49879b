package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// usersCmd groups identity-provider user operations.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage identity-provider users",
}

// groupsCmd groups identity-provider group operations.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage identity-provider groups",
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(groupsCmd)

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersPromoteCmd)
	usersCmd.AddCommand(usersDemoteCmd)

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsRenameCmd)
	groupsCmd.AddCommand(groupsDeleteCmd)
	groupsCmd.AddCommand(groupsAddMemberCmd)
	groupsCmd.AddCommand(groupsRemoveMemberCmd)
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("Found %d users:\n", len(users))
		for _, user := range users {
			name := user.DisplayName()
			if name == "" {
				name = user.ID
			}
			fmt.Printf("  • %s (ID: %s)\n", name, user.ID)
		}
		return nil
	},
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <user-id>",
	Short: "Grant the admin role to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.GrantAdminRole(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Granted admin role to %s\n", args[0])
		return nil
	},
}

var usersDemoteCmd = &cobra.Command{
	Use:   "demote <user-id>",
	Short: "Revoke the admin role from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RevokeAdminRole(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Revoked admin role from %s\n", args[0])
		return nil
	},
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := client.ListUserGroups(cmd.Context())
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			fmt.Println("No groups found.")
			return nil
		}

		fmt.Printf("Found %d groups:\n", len(groups))
		for _, group := range groups {
			fmt.Printf("  • %s (ID: %s)\n", group.Name, group.ID)
		}
		return nil
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := client.CreateUserGroup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created group %s (ID: %s)\n", group.Name, group.ID)
		return nil
	},
}

var groupsRenameCmd = &cobra.Command{
	Use:   "rename <group-id> <name>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RenameUserGroup(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Renamed group %s to %s\n", args[0], args[1])
		return nil
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <group-id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteUserGroup(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted group %s\n", args[0])
		return nil
	},
}

var groupsAddMemberCmd = &cobra.Command{
	Use:   "add-member <group-id> <user-id>",
	Short: "Add a user to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.AddGroupMember(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Added %s to group %s\n", args[1], args[0])
		return nil
	},
}

var groupsRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <group-id> <user-id>",
	Short: "Remove a user from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RemoveGroupMember(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Removed %s from group %s\n", args[1], args[0])
		return nil
	},
}
