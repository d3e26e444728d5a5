package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringList_Value(t *testing.T) {
	var empty StringList
	v, err := empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, "", v)

	list := StringList{"web", "api"}
	v, err = list.Value()
	assert.NoError(t, err)
	assert.Equal(t, "web,api", v)
}

func TestStringList_Scan(t *testing.T) {
	var list StringList

	assert.NoError(t, list.Scan("web,api"))
	assert.Equal(t, StringList{"web", "api"}, list)

	assert.NoError(t, list.Scan([]byte("infra")))
	assert.Equal(t, StringList{"infra"}, list)

	assert.NoError(t, list.Scan(""))
	assert.Nil(t, list)

	assert.NoError(t, list.Scan(nil))
	assert.Nil(t, list)

	assert.Error(t, list.Scan(42))
}

func TestStringList_RoundTrip(t *testing.T) {
	list := StringList{"web", "api", "mobile"}

	v, err := list.Value()
	assert.NoError(t, err)

	var restored StringList
	assert.NoError(t, restored.Scan(v))
	assert.Equal(t, list, restored)
}

func TestUser_DisplayName(t *testing.T) {
	user := &User{Username: "jdoe"}
	assert.Equal(t, "jdoe", user.DisplayName())

	user.Firstname = "Jane"
	assert.Equal(t, "Jane", user.DisplayName())

	user.Lastname = "Doe"
	assert.Equal(t, "Jane Doe", user.DisplayName())
}

func TestVulnerability_IsOpen(t *testing.T) {
	vuln := &Vulnerability{Status: VulnerabilityStatusOpen}
	assert.True(t, vuln.IsOpen())

	vuln.Status = VulnerabilityStatusInProgress
	assert.True(t, vuln.IsOpen())

	vuln.Status = VulnerabilityStatusResolved
	assert.False(t, vuln.IsOpen())

	vuln.Status = VulnerabilityStatusAccepted
	assert.False(t, vuln.IsOpen())
}
