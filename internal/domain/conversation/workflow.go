package conversation

// Workflow identifies one multi-step data-entry process. Each workflow is a
// linear sequence of steps; GiveProduct has one data-dependent fork after the
// product-name step (existing product skips the price step).
type Workflow string

const (
	WorkflowNone        Workflow = ""
	WorkflowAddProduct  Workflow = "add_product"
	WorkflowAddSeller   Workflow = "add_seller"
	WorkflowGiveProduct Workflow = "give_product"
	WorkflowLogin       Workflow = "login"
)

type Step string

const (
	StepNone Step = ""

	// add_product
	StepProductName  Step = "awaiting_name"
	StepProductPrice Step = "awaiting_price"

	// add_seller
	StepSellerName         Step = "awaiting_name"
	StepSellerNeighborhood Step = "awaiting_neighborhood"
	StepSellerPhone        Step = "awaiting_phone"
	StepSellerPassword     Step = "awaiting_password"

	// give_product
	StepGiveProductName Step = "awaiting_product_name"
	StepGiveNewPrice    Step = "awaiting_new_price"
	StepGiveQuantity    Step = "awaiting_quantity"

	// login
	StepLoginPassword Step = "awaiting_login_password"
)

// steps lists the declared states of each workflow, in prompt order. The
// engine only ever transitions along these sequences (or out to idle).
var steps = map[Workflow][]Step{
	WorkflowAddProduct:  {StepProductName, StepProductPrice},
	WorkflowAddSeller:   {StepSellerName, StepSellerNeighborhood, StepSellerPhone, StepSellerPassword},
	WorkflowGiveProduct: {StepGiveProductName, StepGiveNewPrice, StepGiveQuantity},
	WorkflowLogin:       {StepLoginPassword},
}

// First returns the initial step of a workflow.
func (w Workflow) First() Step {
	seq := steps[w]
	if len(seq) == 0 {
		return StepNone
	}
	return seq[0]
}

// Declared reports whether the step belongs to the workflow.
func (w Workflow) Declared(s Step) bool {
	for _, d := range steps[w] {
		if d == s {
			return true
		}
	}
	return false
}
