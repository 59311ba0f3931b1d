package component

import "github.com/milk9111/evermaze/common"

// Swipe is the classified input gesture driving a player.
type Swipe struct {
	Direction common.Direction
	TouchDown bool
	Enabled   bool
	// Reverse flips every incoming direction.
	Reverse bool
}

func (s *Swipe) Reset() {
	s.Direction = common.None
	s.TouchDown = false
}

var SwipeComponent = NewComponent[Swipe]()
