package ast

type (
	// главные сущности
	ModuleID  uint32
	ItemID    uint32
	StmtID    uint32
	ExprID    uint32
	TypeID    uint32
	PatternID uint32
	// подсущности
	PayloadID uint32
)

const (
	NoModuleID  ModuleID  = 0
	NoItemID    ItemID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoPatternID PatternID = 0
	NoPayloadID PayloadID = 0
)

func (id ModuleID) IsValid() bool  { return id != NoModuleID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
