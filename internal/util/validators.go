package util

import (
	"regexp"
)

// EmailRx matches a standard mailbox address.
var EmailRx = regexp.MustCompile("[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?")

// WebsiteRx matches a bare or http(s)-prefixed domain.
var WebsiteRx = regexp.MustCompile(`^(https?://)?(www\.)?[a-zA-Z0-9-]+(\.[a-zA-Z]{2,})+$`)
