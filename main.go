////////////////////////////////////////////////////////////////////////////////
// Legion Sales: token sale contract suite for the vsc network
////////////////////////////////////////////////////////////////////////////////

package main

import (
	_ "legion_sales/contract"
)

// main is left empty on purpose - the contract surface is the set of
// exported entrypoints in the contract package.
func main() {

}
