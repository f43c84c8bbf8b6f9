package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

func (a *app) requestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"req", "leave"},
		Short:   "List, submit and decide leave requests",
	}
	cmd.AddCommand(
		a.requestsListCmd(),
		a.requestsCreateCmd(),
		a.requestsDecideCmd("approve", domain.StatusApproved),
		a.requestsDecideCmd("reject", domain.StatusRejected),
		a.requestsDeleteCmd(),
	)
	return cmd
}

func (a *app) requestsListCmd() *cobra.Command {
	var status string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your leave requests, or your employees' as a supervisor",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.LeaveStatus(strings.ToLower(status))
			if filter != "" && !domain.ValidLeaveStatus(filter) {
				return fmt.Errorf("unknown status %q (pending, approved, rejected)", status)
			}
			if err := a.setup(); err != nil {
				return err
			}
			items, err := check(a.svc.ListLeaveRequests(cmd.Context()))
			if err != nil {
				return err
			}
			if filter != "" {
				kept := items[:0]
				for _, r := range items {
					if r.Status == filter {
						kept = append(kept, r)
					}
				}
				items = kept
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if items == nil {
					items = []domain.LeaveRequest{}
				}
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No leave requests.")
				return nil
			}
			_, isSupervisor := a.svc.Session().Supervisor()
			headers, rows := requestRows(items, isSupervisor)
			fmt.Fprintln(out, renderTable(headers, rows, 4))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show requests with this status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) requestsCreateCmd() *cobra.Command {
	var start, end, reason string
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Submit a leave request",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req domain.NewLeaveRequest
			if start != "" {
				d, err := domain.ParseDate(start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				req.StartDate = d
			}
			if end != "" {
				d, err := domain.ParseDate(end)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
				req.EndDate = d
			}
			if r := strings.TrimSpace(reason); r != "" {
				req.Reason = &r
			}
			if err := a.setup(); err != nil {
				return err
			}
			created, err := check(a.svc.CreateLeaveRequest(cmd.Context(), req))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted request #%d (%s to %s, %d days): %s\n",
				created.ID, created.StartDate, created.EndDate, created.Days(), created.Status.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reason, "reason", "", "optional reason")
	return cmd
}

func (a *app) requestsDecideCmd(verb string, status domain.LeaveStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ID",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			updated, err := check(a.svc.UpdateLeaveRequestStatus(cmd.Context(), id, status))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request #%d is now %s.\n", id, updated.Status)
			return nil
		},
	}
}

func (a *app) requestsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Withdraw one of your pending leave requests",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			if _, err := check(a.svc.DeleteLeaveRequest(cmd.Context(), id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted request #%d.\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("ID must be a positive number")
	}
	return id, nil
}
