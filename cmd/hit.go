package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
)

var hitDamage int

var hitCmd = &cobra.Command{
	Use:   "hit <attack>",
	Short: "Record an attack against the active target",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		key := strings.Join(args, " ")
		attackID, name, damage := key, key, 0
		if a, ok := catalog.Attack(key); ok {
			attackID, name, damage = a.ID, a.Name, a.Damage
		}
		if cmd.Flags().Changed("damage") {
			damage = hitDamage
		}

		e := store.RecordAttack(attackID, name, damage)
		warnUnsaved(cmd, store)

		fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%d) -> %s\n", e.Seq, e.DisplayName, e.Damage, store.ActiveTargetLabel())
		return nil
	},
}

func init() {
	hitCmd.Flags().IntVarP(&hitDamage, "damage", "d", 0, "Damage dealt (overrides the catalog value)")
	rootCmd.AddCommand(hitCmd)
}
