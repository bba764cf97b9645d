package config

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// ClientInfo is sclientinfo.xml, the legacy client-info document naming
// one or more login services a player can connect to. Parsed with the
// stdlib encoding/xml rather than inventing a new settings format for
// something that already has one.
type ClientInfo struct {
	XMLName     xml.Name    `xml:"clientinfo"`
	ServiceType string      `xml:"servicetype"`
	Connections []ServiceID `xml:"servicelist>connection"`
}

// ServiceID is one <connection> entry: a named login service endpoint.
type ServiceID struct {
	Display          string `xml:"display"`
	Description      string `xml:"desc"`
	Balloon          string `xml:"balloon"`
	Address          string `xml:"address"`
	Port             uint16 `xml:"port"`
	Version          int    `xml:"version"`
	LangType         int    `xml:"langtype"`
	RegistrationWeb  string `xml:"registrationweb"`
}

// LoadClientInfo reads and parses sclientinfo.xml at path.
func LoadClientInfo(path string) (*ClientInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client info %s: %w", path, err)
	}
	var info ClientInfo
	// Legacy client-info files declare a non-UTF-8 encoding such as
	// euc-kr. Any declared charset is accepted and the bytes are passed
	// through untranscoded.
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := decoder.Decode(&info); err != nil {
		return nil, fmt.Errorf("parse client info %s: %w", path, err)
	}
	return &info, nil
}

// ServiceByDisplay finds a connection entry by its display name, the way
// a login screen's server picker does.
func (c *ClientInfo) ServiceByDisplay(display string) (ServiceID, bool) {
	for _, svc := range c.Connections {
		if svc.Display == display {
			return svc, true
		}
	}
	return ServiceID{}, false
}
