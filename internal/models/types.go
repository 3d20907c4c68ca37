package models

import "github.com/saravenpi/barter/internal/location"

// Freelancer is a profile other users can discover, rate and message.
type Freelancer struct {
	ID              string          `yaml:"id"`
	Name            string          `yaml:"name"`
	Skill           string          `yaml:"skill"`
	SkillLearn      string          `yaml:"skill_learn,omitempty"`
	Gender          string          `yaml:"gender,omitempty"`
	YearsExperience int             `yaml:"years_experience,omitempty"`
	Website         string          `yaml:"website,omitempty"`
	Bio             string          `yaml:"bio,omitempty"`
	Image           string          `yaml:"image,omitempty"`
	IntroVideo      string          `yaml:"intro_video,omitempty"`
	Proofs          []string        `yaml:"proofs,omitempty"`
	Position        location.Coords `yaml:"position"`
}

// Conversation summarizes one stored chat thread.
type Conversation struct {
	PeerID       string
	PeerName     string
	LastMessage  string
	LastTime     string
	MessageCount int
	Received     int
}
