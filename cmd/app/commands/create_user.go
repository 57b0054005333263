package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	userUseCase "github.com/allisson/deliveryqueue/internal/user/usecase"
)

// RunCreateUser registers a user. When password is empty it is read from the
// first line of io.Reader.
func RunCreateUser(
	ctx context.Context,
	users userUseCase.UserUseCase,
	logger *slog.Logger,
	io IOTuple,
	name string,
	email string,
	password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	logger.Info("creating user", slog.String("email", email))

	user, err := users.Register(ctx, userUseCase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"id":    user.ID.String(),
			"name":  user.Name,
			"email": user.Email,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(line)
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
