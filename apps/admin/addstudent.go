package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coursedesk/coursedesk/core/record"
)

var readPasswordFunc = term.ReadPassword // mockable

func (cli *commandLine) addStudentCmd() *cobra.Command {
	var id, name, email string

	cmd := &cobra.Command{
		Use:   "addstudent",
		Short: "Create a student; the password is prompted",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cli.studentService()
			if err != nil {
				return err
			}
			pwd, err := promptPassword()
			if err != nil {
				return err
			}

			usr, err := svc.Create(context.Background(), record.Record{
				"id":       id,
				"name":     name,
				"email":    email,
				"password": pwd,
			})
			if err != nil {
				return err
			}
			fmt.Printf("student %s created\n", usr.String("id"))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "The student's university id")
	cmd.Flags().StringVar(&name, "name", "", "The student's full name")
	cmd.Flags().StringVar(&email, "email", "", "The student's email")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(pwd), nil
}
