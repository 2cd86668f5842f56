package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/UniPortal-io/uniportal/internal/auth"
	"github.com/UniPortal-io/uniportal/internal/config"
	"github.com/UniPortal-io/uniportal/internal/notify"
	"github.com/UniPortal-io/uniportal/internal/storage"
	"golang.org/x/term"
)

const version = "0.0.1"

type portal struct {
	service *auth.Service
	mailer  *notify.SMTPMailer
	baseURL string
	in      *bufio.Reader
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting UniPortal v%s with config: %s", version, *configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	store := storage.Open(cfg.Storage.Path)
	if !store.Available() {
		log.Println("Running without persistence; data will not survive this process")
	}

	p := &portal{
		service: auth.NewService(store),
		mailer:  notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From),
		baseURL: cfg.Portal.BaseURL,
		in:      bufio.NewReader(os.Stdin),
	}
	p.run(store)
}

func (p *portal) run(store *storage.Store) {
	for {
		fmt.Println()
		fmt.Println("UniPortal")
		fmt.Println(" 1) Sign in")
		fmt.Println(" 2) Register")
		fmt.Println(" 3) Recover password")
		fmt.Println(" 4) Reset password with token")
		fmt.Println(" 5) Show session")
		fmt.Println(" 6) Sign out")
		fmt.Println(" 7) Reset demo data")
		fmt.Println(" 0) Quit")

		switch p.prompt("> ") {
		case "1":
			p.login()
		case "2":
			p.register()
		case "3":
			p.recover()
		case "4":
			p.reset()
		case "5":
			p.showSession()
		case "6":
			p.service.Logout()
			fmt.Println("Signed out")
		case "7":
			store.Reset()
			fmt.Println("Demo data restored")
		case "0":
			return
		}
	}
}

func (p *portal) prompt(label string) string {
	fmt.Print(label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptPassword reads without echo when stdin is a terminal.
func (p *portal) promptPassword(label string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.prompt(label)
	}
	fmt.Print(label)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(raw)
}

func (p *portal) login() {
	email := p.prompt("Email: ")
	password := p.promptPassword("Password: ")

	res := p.service.Login(email, password)
	fmt.Println(res.Message)
	if res.Success {
		fmt.Printf("Welcome, %s (%s). Session expires at %s\n",
			res.Session.Name, res.Session.Role, res.Session.ExpiresAt.Format("15:04"))
	}
}

func (p *portal) register() {
	name := p.prompt("Name: ")
	email := p.prompt("Email: ")
	password := p.promptPassword("Password: ")
	confirm := p.promptPassword("Confirm password: ")

	res := p.service.Register(name, email, password, confirm)
	fmt.Println(res.Message)
}

func (p *portal) recover() {
	email := p.prompt("Email: ")

	res := p.service.RequestPasswordRecovery(email)
	fmt.Println(res.Message)
	if res.Token == "" {
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", p.baseURL, res.Token)
	user := p.service.FindUserByEmail(email)
	if user == nil {
		return
	}

	if err := p.mailer.SendRecoveryEmail(user.Email, user.Name, link); err != nil {
		// Best-effort delivery: fall back to showing the link.
		log.Printf("recovery email not sent: %v", err)
		fmt.Printf("Use this link to reset your password:\n%s\n", link)
		return
	}
	fmt.Println("Recovery email delivered")
}

func (p *portal) reset() {
	token := p.prompt("Recovery token: ")

	check := p.service.ValidateRecoveryToken(token)
	if !check.Valid {
		fmt.Println(check.Message)
		return
	}

	password := p.promptPassword("New password: ")
	confirm := p.promptPassword("Confirm password: ")

	res := p.service.ResetPassword(token, password, confirm)
	fmt.Println(res.Message)
}

func (p *portal) showSession() {
	session := p.service.Session()
	if session == nil {
		fmt.Println("No active session")
		return
	}
	fmt.Printf("%s <%s> role=%s signed in at %s, expires %s\n",
		session.Name, session.Email, session.Role,
		session.LoginTime.Format("15:04:05"), session.ExpiresAt.Format("15:04:05"))
}
