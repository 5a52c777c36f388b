package banner

import (
	"fmt"

	"tabboard/pkg/config"
)

const banner = `
████████╗ █████╗ ██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
╚══██╔══╝██╔══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
   ██║   ███████║██████╔╝██████╔╝██║   ██║███████║██████╔╝██║  ██║
   ██║   ██╔══██║██╔══██╗██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
   ██║   ██║  ██║██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
   ╚═╝   ╚═╝  ╚═╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`

// PrintWithEff prints the banner using an EffectiveConfigResult which
// provides richer context (config, addr, storage, source).
func PrintWithEff(eff config.EffectiveConfigResult, version string) {
	addr := eff.Addr
	if addr == "" && eff.Config != nil {
		addr = eff.Config.Addr()
	}
	src := eff.Source
	if src == "" {
		src = "flags"
	}

	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	if eff.Config != nil {
		fmt.Printf("Storage:  %s\n", eff.Config.Storage.Backend)
	}
	switch {
	case eff.Config != nil && eff.Config.Storage.Backend == "pebble":
		fmt.Printf("DB Path:  %s\n", eff.DBPath)
	case eff.Config != nil && eff.Config.Storage.Backend == "pebble+file":
		fmt.Printf("DB Path:  %s\n", eff.DBPath)
		fmt.Printf("File:     %s\n", eff.FilePath)
	default:
		fmt.Printf("File:     %s\n", eff.FilePath)
	}
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config:   %s\n", src)

	fmt.Println("\n== Examples ===================================================")
	fmt.Println("curl -X POST 'http://<host>:<port>/v1/messages' -d '{\"title\": \"hi\", \"content\": \"hello board\"}'")
	fmt.Println("curl 'http://<host>:<port>/v1/messages?category=First%20Messages&limit=10'")
	fmt.Println("curl 'http://<host>:<port>/v1/categories'")

	fmt.Println("\n== Production? =================================================")
	tlsOK := eff.Config != nil && eff.Config.Server.TLS.CertFile != "" && eff.Config.Server.TLS.KeyFile != ""
	if tlsOK {
		fmt.Println("- TLS: configured")
	} else {
		fmt.Println("- TLS: unconfigured")
	}
	if eff.Config != nil && eff.Config.Security.RateLimit.RPS > 0 {
		fmt.Printf("- Rate limit: %.0f rps (burst %d)\n", eff.Config.Security.RateLimit.RPS, eff.Config.Security.RateLimit.Burst)
	} else {
		fmt.Println("- Rate limit: disabled")
	}
	if eff.Config != nil && eff.Config.Snapshot.Enabled {
		cron := eff.Config.Snapshot.Cron
		if cron == "" {
			cron = "0 2 * * *"
		}
		fmt.Printf("- Snapshots: enabled (cron=%s)\n", cron)
	} else {
		fmt.Println("- Snapshots: disabled")
	}
	if eff.Config != nil && eff.Config.MCP.Enabled {
		fmt.Printf("- MCP: enabled (%s)\n", eff.Config.MCP.Transport)
	} else {
		fmt.Println("- MCP: disabled")
	}

	fmt.Println("\n== Logs: =================================================")
}
