package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"movielogger/cmd/cli/authentication"
	"movielogger/cmd/cli/dto"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the Movie Logger API server. Supports register, login, logout and me.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		response, err := publicClient().Register(&req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		if err := saveSession(response); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), "Registered and logged in as %s", response.User.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "UserID: %s\n", response.User.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		response, err := publicClient().Login(&req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveSession(response); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), "Logged in as %s", response.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		user, err := httpClient.Me()
		if err != nil {
			return fmt.Errorf("failed to fetch account: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", heading("Username:"), user.Username)
		fmt.Fprintf(out, "%s %s\n", heading("Email:"), user.Email)
		fmt.Fprintf(out, "%s %s\n", heading("ID:"), user.ID)
		fmt.Fprintf(out, "%s %s\n", heading("Member since:"), user.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

func saveSession(response *dto.AuthResponse) error {
	err := authentication.StoreTokens(&authentication.StoredCredentials{
		Token:    response.Token,
		UserID:   response.User.ID,
		Username: response.User.Username,
		APIURL:   apiURL,
	})
	if err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, meCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email address of the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
