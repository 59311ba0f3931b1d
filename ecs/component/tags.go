package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type PursuerTag struct{}

var PursuerTagComponent = NewComponent[PursuerTag]()
