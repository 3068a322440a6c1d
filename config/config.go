package config

import (
	"flag"
	"net"
	"regexp"
	"strconv"
	"strings"
)

type Config struct {
	Addr          string
	CSVPath       string
	XLSXPath      string
	SQLitePath    string
	StrictRanking bool
	Debug         bool

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPTLS    bool
	NotifyFrom string
	NotifyTo   []string
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.CSVPath, "csv", "survey_data.csv", "path to the primary CSV table")
	flag.StringVar(&cfg.XLSXPath, "xlsx", "survey_results.xlsx", "path to the spreadsheet mirror (empty to disable)")
	flag.StringVar(&cfg.SQLitePath, "sqlite", "", "path to an optional SQLite backend file (empty to disable)")
	flag.BoolVar(&cfg.StrictRanking, "strict-ranking", false, "reject rankings that are not a full permutation")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")

	flag.StringVar(&cfg.SMTPHost, "smtp-host", "", "SMTP relay host (empty disables notifications)")
	flag.StringVar(&cfg.SMTPPort, "smtp-port", "25", "SMTP relay port")
	flag.StringVar(&cfg.SMTPUser, "smtp-user", "", "SMTP user")
	flag.StringVar(&cfg.SMTPPass, "smtp-pass", "", "SMTP password")
	flag.BoolVar(&cfg.SMTPTLS, "smtp-tls", false, "connect to the SMTP relay over TLS")
	flag.StringVar(&cfg.NotifyFrom, "notify-from", "noreply@training-survey-app.com", "notification sender address")
	var notifyTo string
	flag.StringVar(&notifyTo, "notify-to", "", "comma-separated notification recipients")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	for _, to := range strings.Split(notifyTo, ",") {
		if to = strings.TrimSpace(to); to != "" {
			cfg.NotifyTo = append(cfg.NotifyTo, to)
		}
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
