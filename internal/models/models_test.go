package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRoles(t *testing.T) {
	u := User{Roles: []Role{{Name: RoleTeacher}, {Name: RoleAdmin}}}

	assert.True(t, u.HasRole(RoleTeacher))
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole(RoleStudent))
	assert.Equal(t, []string{"teacher", "admin"}, u.RoleNames())
}

func TestUserGroups(t *testing.T) {
	group := "11-Т"
	u := User{GroupName: &group, GroupsLeader: []string{"10-А", "11-Т"}}

	assert.Equal(t, "11-Т", u.Group())
	assert.True(t, u.LeadsGroup("10-А"))
	assert.False(t, u.LeadsGroup("9-Б"))
	assert.Equal(t, "", (&User{}).Group())
}

func TestRequiredStages(t *testing.T) {
	assert.Equal(t, 3, (&EventType{}).RequiredStages(3))
	assert.Equal(t, 2, (&EventType{MinStagesForCompletion: 2}).RequiredStages(3))
}

func TestEventDate(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, &start, (&Event{DateStart: &start, DateEnd: &end}).Date())
	assert.Equal(t, &end, (&Event{DateEnd: &end}).Date())
	assert.Nil(t, (&Event{}).Date())
}
