package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/caregivers/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// num formats hours, rates and costs with thousands separators and at most
// two decimals.
func num(f float64) string {
	return humanize.CommafWithDigits(f, 2)
}

func opt(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

var reportNames = []string{
	"applicants", "hours", "average-rate", "above-average", "total-cost",
	"job-applications", "jobs", "members", "work-hours",
}

func runReport(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("report: name required (one of %s)", strings.Join(reportNames, ", "))
	}
	name := args[0]

	fs := newFlags("report " + name)
	status := fs.String("status", models.StatusAccepted, "appointment status")
	query := fs.String("q", "", "requirement text for jobs")
	careType := fs.String("type", "", "caregiving type")
	city := fs.String("city", "", "member city")
	rule := fs.String("rule", "", "house rule text")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	w := newTable(a.out)
	defer w.Flush()

	switch name {
	case "applicants":
		rows, err := a.st.ApplicantCounts(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "JOB\tMEMBER\tTYPE\tAPPLICANTS")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.JobID, r.MemberName, r.RequiredCaregivingType, humanize.Comma(int64(r.ApplicantCount)))
		}

	case "hours":
		rows, err := a.st.HoursByCaregiver(ctx, *status)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "CAREGIVER\tNAME\tHOURS")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.CaregiverUserID, r.CaregiverName, num(r.TotalHours))
		}

	case "average-rate":
		avg, ok, err := a.st.AverageHourlyRate(ctx, *status)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(w, "no caregivers with %s appointments\n", *status)
			return nil
		}
		fmt.Fprintf(w, "average hourly rate (%s)\t%s\n", *status, num(avg))

	case "above-average":
		rows, err := a.st.CaregiversAboveAverage(ctx, *status)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "CAREGIVER\tNAME\tRATE\tAVERAGE")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.CaregiverUserID, r.CaregiverName, num(r.HourlyRate), num(r.AverageRate))
		}

	case "total-cost":
		rows, err := a.st.TotalCostByCaregiver(ctx, *status)
		if err != nil {
			return err
		}
		var total float64
		fmt.Fprintln(w, "CAREGIVER\tNAME\tRATE\tHOURS\tCOST")
		for _, r := range rows {
			total += r.TotalCost
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.CaregiverUserID, r.CaregiverName, num(r.HourlyRate), num(r.TotalHours), num(r.TotalCost))
		}
		fmt.Fprintf(w, "\t\t\tTOTAL\t%s\n", num(total))

	case "job-applications":
		rows, err := a.st.ListJobApplicationsView(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "JOB\tCAREGIVER\tAPPLICANT\tTYPE\tAPPLIED")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", r.JobID, r.CaregiverUserID, r.ApplicantName, r.RequiredCaregivingType, r.DateApplied)
		}

	case "jobs":
		rows, err := a.st.SearchJobsByRequirement(ctx, *query)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "JOB\tMEMBER\tTYPE\tREQUIREMENTS\tPOSTED")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", r.JobID, r.MemberUserID, r.RequiredCaregivingType, opt(r.OtherRequirements), r.DatePosted)
		}

	case "members":
		rows, err := a.st.SearchMembers(ctx, *careType, *city, *rule)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "MEMBER\tNAME\tCITY\tHOUSE RULES")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.MemberUserID, r.MemberName, opt(r.City), opt(r.HouseRules))
		}

	case "work-hours":
		rows, err := a.st.WorkHoursByCaregivingType(ctx, *careType)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "APPOINTMENT\tDATE\tTIME\tHOURS")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.AppointmentID, r.AppointmentDate, r.AppointmentTime, num(r.WorkHours))
		}

	default:
		return errors.New("report: unknown report " + name + " (one of " + strings.Join(reportNames, ", ") + ")")
	}
	return nil
}
