package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a student's password; the new password is prompted",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cli.studentService()
			if err != nil {
				return err
			}
			pwd, err := promptPassword()
			if err != nil {
				return err
			}
			if err := svc.SetPassword(context.Background(), id, pwd); err != nil {
				return err
			}
			fmt.Printf("password reset for student %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "The student's university id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
