package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// signupFlags are the identity fields shared by both signup commands.
type signupFlags struct {
	email, firstName, lastName, nationalID, phone, password string
}

func (f *signupFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.firstName, "first-name", "", "first name")
	fs.StringVar(&f.lastName, "last-name", "", "last name")
	fs.StringVar(&f.nationalID, "national-id", "", "10-digit national id")
	fs.StringVar(&f.phone, "phone", "", "11-digit phone number")
	fs.StringVar(&f.password, "password", "", "initial password (prompted when omitted)")
}

func (a *app) askPassword(cmd *cobra.Command, f *signupFlags) error {
	if f.password != "" {
		return nil
	}
	p, err := a.prompts(cmd.OutOrStdout()).secret("Password: ")
	if err != nil {
		return err
	}
	f.password = p
	return nil
}

func (a *app) employeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "List and register your employees (supervisors only)",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your employees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			items, err := check(a.svc.ListEmployees(cmd.Context()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if items == nil {
					items = []domain.Employee{}
				}
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No employees.")
				return nil
			}
			headers, rows := employeeRows(items)
			fmt.Fprintln(out, renderTable(headers, rows, -1))
			return nil
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var f signupFlags
	var leave int
	signup := &cobra.Command{
		Use:   "signup",
		Short: "Register an employee under your supervision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if err := a.askPassword(cmd, &f); err != nil {
				return err
			}
			emp, err := check(a.svc.SignupEmployee(cmd.Context(), domain.EmployeeSignup{
				Email:             f.email,
				FirstName:         f.firstName,
				LastName:          f.lastName,
				NationalID:        f.nationalID,
				PhoneNumber:       f.phone,
				Password:          f.password,
				LeaveRequestsLeft: leave,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s> with %d days of leave (id %d).\n",
				emp.FullName(), emp.Email, emp.LeaveRequestsLeft, emp.ID)
			return nil
		},
	}
	f.register(signup.Flags())
	signup.Flags().IntVar(&leave, "leave", domain.DefaultLeaveRequestsLeft, "leave allowance in days")

	cmd.AddCommand(list, signup)
	return cmd
}

func (a *app) supervisorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supervisors",
		Short: "Register supervisor accounts",
	}

	var f signupFlags
	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create a supervisor account (no sign-in needed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if err := a.askPassword(cmd, &f); err != nil {
				return err
			}
			sup, err := check(a.svc.SignupSupervisor(cmd.Context(), domain.SupervisorSignup{
				Email:       f.email,
				FirstName:   f.firstName,
				LastName:    f.lastName,
				NationalID:  f.nationalID,
				PhoneNumber: f.phone,
				Password:    f.password,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created supervisor %s <%s> (id %d). Sign in with: leavedesk login -e %s\n",
				sup.FullName(), sup.Email, sup.ID, sup.Email)
			return nil
		},
	}
	f.register(signup.Flags())

	cmd.AddCommand(signup)
	return cmd
}
