package users

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type UserCmd struct {
	Add    UserAddCmd    `cmd:"" help:"Create a user."`
	List   UserListCmd   `cmd:"" help:"List users."`
	Delete UserDeleteCmd `cmd:"" help:"Delete a user and all of their journal data."`
}

type UserAddCmd struct {
	Username string `arg:"" help:"Username."`
	PIN      string `name:"pin" help:"Optional numeric PIN (4-8 digits), stored as a bcrypt hash."`
	Default  bool   `help:"Make this the default user."`
}

func (c *UserAddCmd) Validate() error {
	if c.PIN == "" {
		return nil
	}
	if err := validation.New().Var(c.PIN, "numeric,min=4,max=8"); err != nil {
		return fmt.Errorf("PIN must be 4 to 8 digits")
	}
	return nil
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	username := strings.TrimSpace(c.Username)

	if _, err := ctx.Store.GetUserByUsername(ctx.Context(), username); err == nil {
		return fmt.Errorf("user %q already exists", username)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	user := models.User{Username: username}
	if c.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.PIN), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash PIN: %w", err)
		}
		user.PINHash = string(hash)
	}
	if err := validation.New().Struct(user); err != nil {
		return err
	}

	if err := ctx.Store.AddUser(ctx.Context(), &user); err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	if c.Default {
		settings, err := ctx.Store.GetSettings(ctx.Context())
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.DefaultUser = user.Username
		if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	ctx.Printf("✓ Added user: %s (ID: %s)\n", user.Username, user.ID)
	return nil
}

// CheckPIN reports whether pin matches the user's stored hash. Users without
// a PIN accept any input.
func CheckPIN(user models.User, pin string) bool {
	if user.PINHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)) == nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		ctx.Println("No users found.")
		return nil
	}

	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	for _, u := range users {
		count, err := ctx.Store.CountEntriesByUser(ctx.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		marker := " "
		if u.Username == settings.DefaultUser {
			marker = "*"
		}
		lock := ""
		if u.PINHash != "" {
			lock = " 🔒"
		}
		ctx.Printf("%s %s%s (%d entries)\n", marker, u.Username, lock, count)
	}
	return nil
}

type UserDeleteCmd struct {
	Username string `arg:"" help:"Username to delete."`
	PIN      string `name:"pin" help:"PIN of the user, if one is set."`
}

func (c *UserDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Store.GetUserByUsername(ctx.Context(), c.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("user %q not found", c.Username)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !CheckPIN(user, c.PIN) {
		return fmt.Errorf("incorrect PIN for user %q", user.Username)
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteUser(ctx.Context(), user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.DefaultUser == user.Username {
		settings.DefaultUser = ""
		if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	ctx.Printf("✓ Deleted user: %s\n", user.Username)
	return nil
}
