package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesArchivesAndKeepAlive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	contents := `
packetVersion: "20220406"
archives:
  - kind: native
    path: data.grf
  - kind: folder
    path: data/
keepAlive:
  login: 58s
  character: 10s
  map: 4s
audio:
  maxEntries: 400
  maxBytes: 52428800
debugRelay:
  enabled: true
  listen: "127.0.0.1:9000"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PacketVersion != "20220406" {
		t.Fatalf("got version %q", cfg.PacketVersion)
	}
	if len(cfg.Archives) != 2 || cfg.Archives[0].Kind != "native" || cfg.Archives[1].Kind != "folder" {
		t.Fatalf("got archives %+v", cfg.Archives)
	}
	if !cfg.DebugRelay.Enabled || cfg.DebugRelay.Listen != "127.0.0.1:9000" {
		t.Fatalf("got debug relay %+v", cfg.DebugRelay)
	}
}

func TestLoadClientInfoParsesConnections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sclientinfo.xml")
	contents := `<?xml version="1.0" encoding="euc-kr"?>
<clientinfo>
	<servicetype>valkyrie</servicetype>
	<servicelist>
		<connection>
			<display>Main Server</display>
			<desc>Main Server</desc>
			<balloon>Welcome!</balloon>
			<address>127.0.0.1</address>
			<port>6900</port>
			<version>55</version>
			<langtype>1</langtype>
		</connection>
	</servicelist>
</clientinfo>`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := LoadClientInfo(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc, ok := info.ServiceByDisplay("Main Server")
	if !ok {
		t.Fatal("expected to find the Main Server connection")
	}
	if svc.Address != "127.0.0.1" || svc.Port != 6900 {
		t.Fatalf("got %+v", svc)
	}
}
