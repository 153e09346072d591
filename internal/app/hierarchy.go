package app

type HierarchyErrorCode string

const (
	HierarchyErrCycle          HierarchyErrorCode = "CYCLE"
	HierarchyErrParentNotFound HierarchyErrorCode = "PARENT_NOT_FOUND"
	HierarchyErrHasChildren    HierarchyErrorCode = "HAS_CHILDREN"
)

// HierarchyError reports a rejected change to the requirement forest.
type HierarchyError struct {
	Code    HierarchyErrorCode
	Message string
}

func (e *HierarchyError) Error() string {
	return string(e.Code) + ": " + e.Message
}
