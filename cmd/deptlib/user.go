package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/jwt"
	"github.com/bobinette/deptlib/services"
)

func init() {
	CreateUserCommand.Flags().String("email", "", "email of the user")
	CreateUserCommand.Flags().String("password", "", "password of the user")
	CreateUserCommand.Flags().String("name", "", "name of the user")
	CreateUserCommand.Flags().String("role", "staff", "one of admin, author or staff")
	CreateUserCommand.Flags().String("defense", "", "thesis defense date, YYYY-MM-DD")

	UserCommand.AddCommand(&CreateUserCommand)
	UserCommand.AddCommand(&UserTokenCommand)
	UserCommand.AddCommand(&UserAllCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Manage the accounts",
	Long:  "Manage the accounts",
}

func authService() (*services.AuthService, error) {
	key, err := readKey(cfg.Auth.Key)
	if err != nil {
		return nil, err
	}

	if err := openStores(); err != nil {
		return nil, err
	}

	encoder := jwt.NewEncodeDecoder(key, cfg.Auth.Lifetime.Duration)
	return services.NewAuthService(userRepository, authorRepository, encoder), nil
}

var CreateUserCommand = cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long:  "Create a user, without any privilege check. Used to bootstrap the first admin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := authService()
		if err != nil {
			return err
		}

		form := services.RegisterForm{
			Email:             cmd.Flag("email").Value.String(),
			Password:          cmd.Flag("password").Value.String(),
			Name:              cmd.Flag("name").Value.String(),
			Role:              cmd.Flag("role").Value.String(),
			ThesisDefenseDate: cmd.Flag("defense").Value.String(),
		}

		user, err := service.CreateUser(form)
		if err != nil {
			return err
		}

		logger.Infof("user %d created", user.ID)
		return json.NewEncoder(os.Stdout).Encode(user)
	},
}

var UserTokenCommand = cobra.Command{
	Use:   "token <user id>",
	Short: "Print a token for a user",
	Long:  "Print a token for a user, without asking for the password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.New("user id should be an integer", errors.WithCause(err))
		}

		service, err := authService()
		if err != nil {
			return err
		}

		token, err := service.Token(userID)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

var UserAllCommand = cobra.Command{
	Use:   "all",
	Short: "List all users",
	Long:  "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStores(); err != nil {
			return err
		}

		all, err := userRepository.List()
		if err != nil {
			return err
		}

		for _, user := range all {
			defense := "-"
			if user.ThesisDefenseDate != nil {
				defense = user.ThesisDefenseDate.Format(time.DateOnly)
			}
			fmt.Printf("%d\t%s\t%s\t%s\n", user.ID, user.Email, user.Role, defense)
		}
		return nil
	},
}
