package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-u klokku server URL
//	-user klokku username
//	-token klokku access token
//	-id account id
//	-generation option model (budgets or weekly_plan)
//	-request-timeout request timeout (e.g., "10s")
//	-i scan interval (e.g., "60s")
//	-d history database DSN
//	-a control API address in format [host]:[port]
//	-tui start the terminal picker
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var klokkuURL string
	var username string
	var accessToken string
	var accountID string
	var generation string
	var requestTimeout time.Duration
	var scanInterval time.Duration
	var databaseDSN string
	var interactive bool
	var jsonConfigPath string

	flag.StringVar(&klokkuURL, "u", "", "Klokku server URL")
	flag.StringVar(&username, "user", "", "Klokku username")
	flag.StringVar(&accessToken, "token", "", "Klokku access token")
	flag.StringVar(&accountID, "id", "", "Account id")
	flag.StringVar(&generation, "generation", "", "Option model: budgets or weekly_plan")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	flag.DurationVar(&scanInterval, "i", 0, "Scan interval (e.g., 60s)")
	flag.StringVar(&databaseDSN, "d", "", "History database DSN")
	flag.Var(&serverAddress, "a", "Control API address host:port")
	flag.BoolVar(&interactive, "tui", false, "Start the terminal picker")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Klokku: Klokku{
			URL:            klokkuURL,
			Username:       username,
			AccessToken:    accessToken,
			AccountID:      accountID,
			Generation:     generation,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers:      Workers{ScanInterval: scanInterval},
		UI:           UI{Interactive: interactive},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
