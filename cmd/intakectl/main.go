// Command intakectl is the agency's terminal view of incoming registrations.
//
//	intakectl students [-status new] [-limit 50]
//	intakectl tutors [-status pending]
//	intakectl message <student-id>
//	intakectl set-status student|tutor <id> <status> [comment]
//	intakectl export students|tutors <file.csv>
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	_ "github.com/lib/pq"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/repository"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/config"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/services"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.LoadAdmin()
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		fatal("failed to open database: %v", err)
	}
	defer db.Close()

	admin := services.NewAdminService(
		repository.NewSQLRepository(db),
		domain.NewFormatter(cfg.ContactNumber),
		cfg.WhatsAppNumber,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, admin, os.Args[1], os.Args[2:]); err != nil {
		cancel()
		fatal("%v", err)
	}
}

func run(ctx context.Context, admin *services.AdminService, cmd string, args []string) error {
	switch cmd {
	case "students", "tutors":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		limit := fs.Int("limit", 50, "maximum rows")
		_ = fs.Parse(args)

		filter := domain.RegistrationFilter{Status: domain.Status(*status), Limit: *limit}
		if cmd == "students" {
			recs, err := admin.ListStudents(ctx, filter)
			if err != nil {
				return err
			}
			renderStudents(os.Stdout, recs)
			return nil
		}
		recs, err := admin.ListTutors(ctx, filter)
		if err != nil {
			return err
		}
		renderTutors(os.Stdout, recs)
		return nil

	case "message":
		if len(args) != 1 {
			return fmt.Errorf("usage: intakectl message <student-id>")
		}
		text, url, err := admin.StudentMessage(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(text)
		fmt.Println()
		color.Cyan("%s", url)
		return nil

	case "set-status":
		if len(args) < 3 {
			return fmt.Errorf("usage: intakectl set-status student|tutor <id> <status> [comment]")
		}
		update := domain.StatusUpdate{Status: domain.Status(args[2])}
		if len(args) > 3 {
			comment := strings.Join(args[3:], " ")
			update.AdminComments = &comment
		}
		var err error
		switch args[0] {
		case "student":
			err = admin.UpdateStudentStatus(ctx, args[1], update)
		case "tutor":
			err = admin.UpdateTutorStatus(ctx, args[1], update)
		default:
			return fmt.Errorf("unknown registration type %q", args[0])
		}
		if err != nil {
			return err
		}
		color.Green("%s %s is now %s", args[0], args[1], update.Status)
		return nil

	case "export":
		if len(args) != 2 {
			return fmt.Errorf("usage: intakectl export students|tutors <file.csv>")
		}
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		filter := domain.RegistrationFilter{}
		switch args[0] {
		case "students":
			err = admin.ExportStudentsCSV(ctx, f, filter)
		case "tutors":
			err = admin.ExportTutorsCSV(ctx, f, filter)
		default:
			return fmt.Errorf("unknown export %q", args[0])
		}
		if err != nil {
			return err
		}
		color.Green("Wrote %s", args[1])
		return nil
	}

	usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func usage() {
	color.Cyan("intakectl - registration intake admin")
	fmt.Println("  students [-status s] [-limit n]   list student enquiries")
	fmt.Println("  tutors [-status s] [-limit n]     list tutor applications")
	fmt.Println("  message <student-id>              print the enquiry text and WhatsApp link")
	fmt.Println("  set-status student|tutor <id> <status> [comment]")
	fmt.Println("  export students|tutors <file.csv>")
}

func fatal(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
