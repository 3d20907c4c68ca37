package directory

import (
	"fmt"

	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/models"
)

var samplePortfolio = []string{
	"https://i.pinimg.com/736x/89/fa/ec/89faeceb9fe3ffe56a3a3c3aa831275f.jpg",
	"https://i.pinimg.com/736x/0d/14/94/0d1494e2ea7283d8bc00b22d41fdf673.jpg",
	"https://i.pinimg.com/736x/c2/22/22/c222225feb08bbc143741a82dfee2431.jpg",
	"https://i.pinimg.com/736x/17/ce/04/17ce041d312fa6d09c878ab31b318afd.jpg",
}

// SampleFreelancers is the directory written by Seed.
var SampleFreelancers = []models.Freelancer{
	{
		ID: "1", Name: "Jude Bellingham", Skill: "React Native Developer", SkillLearn: "Motion Graphics",
		Gender: "Male", YearsExperience: 4, Image: "https://randomuser.me/api/portraits/men/12.jpg",
		Bio: "Ships cross-platform apps. Wants to learn to animate them.", Proofs: samplePortfolio,
		Position: location.Coords{Lat: 6.5244, Lon: 3.3792},
	},
	{
		ID: "2", Name: "Olah Israel", Skill: "Frontend Developer", SkillLearn: "UI/UX Design",
		Gender: "Male", YearsExperience: 3, Image: "https://randomuser.me/api/portraits/men/41.jpg",
		Proofs:   samplePortfolio[:2],
		Position: location.Coords{Lat: 6.6018, Lon: 3.3515},
	},
	{
		ID: "3", Name: "Jane Doe", Skill: "Graphic Designer", SkillLearn: "React Native",
		Gender: "Female", YearsExperience: 5, Website: "https://janedoe.dev",
		Image:    "https://randomuser.me/api/portraits/women/44.jpg",
		Proofs:   samplePortfolio,
		Position: location.Coords{Lat: 6.4541, Lon: 3.3947},
	},
	{
		ID: "4", Name: "Mark Smith", Skill: "React Native Developer", SkillLearn: "Logo Design",
		Gender: "Male", YearsExperience: 6, Image: "https://randomuser.me/api/portraits/men/33.jpg",
		Proofs:   samplePortfolio[1:],
		Position: location.Coords{Lat: 9.0765, Lon: 7.3986},
	},
	{
		ID: "5", Name: "Sophia Williams", Skill: "Photoshop Editor", SkillLearn: "Web Development",
		Gender: "Female", YearsExperience: 2, Image: "https://randomuser.me/api/portraits/women/30.jpg",
		Proofs:   samplePortfolio[:3],
		Position: location.Coords{Lat: 7.3775, Lon: 3.9470},
	},
}

// Seed writes SampleFreelancers when the directory is empty and reports how many were written.
func (d *Directory) Seed() (int, error) {
	existing, err := d.List()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, f := range SampleFreelancers {
		if err := d.Save(f); err != nil {
			return i, fmt.Errorf("failed to seed %s: %w", f.Name, err)
		}
	}
	return len(SampleFreelancers), nil
}
