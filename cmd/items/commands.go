package main

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
)

// itemFlags holds the editable item fields shared by create and update.
// Loot flags only produce a loot slot when they are given, so --bait= sets
// an empty bait list while leaving the flag out leaves the slot absent.
type itemFlags struct {
	name        string
	description string
	imageURL    string
	bait        []string
	chest       []string
}

func (f *itemFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "item name")
	flags.StringVar(&f.description, "description", "", "item description")
	flags.StringVar(&f.imageURL, "image-url", "", "item image url")
	flags.StringSliceVar(&f.bait, "bait", nil, "items attracted when used as bait")
	flags.StringSliceVar(&f.chest, "chest", nil, "items found when opened as a chest")
}

func (f *itemFlags) imageURLValue(flags *pflag.FlagSet) *string {
	if !flags.Changed("image-url") {
		return nil
	}
	url := f.imageURL
	return &url
}

func lootValue(flags *pflag.FlagSet, name string, ids []string) *items.Loot {
	if !flags.Changed(name) {
		return nil
	}
	loot := make([]items.ItemID, 0, len(ids))
	for _, id := range ids {
		loot = append(loot, items.ItemID(id))
	}
	return items.LootOf(loot...)
}

func newCreateCmd(a *app) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			output, err := a.service.CreateItem(cmd.Context(), &item.CreateItemInput{
				Name:        f.name,
				Description: f.description,
				ImageURL:    f.imageURLValue(flags),
				AsBait:      lootValue(flags, "bait", f.bait),
				AsChest:     lootValue(flags, "chest", f.chest),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, output.Item)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [item-id]",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := a.service.GetItem(cmd.Context(), &item.GetItemInput{
				ItemID: items.ItemID(args[0]),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, output.Item)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := a.service.ListItems(cmd.Context(), &item.ListItemsInput{})
			if err != nil {
				return err
			}
			return printJSON(cmd, output.Items)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "update [item-id]",
		Short: "Replace an item, creating it when missing",
		Long: `Replace the stored item with the given fields. Fields that are not
given are reset to their defaults, matching a whole record write.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			output, err := a.service.UpdateItem(cmd.Context(), &item.UpdateItemInput{
				Item: items.Item{
					ItemID:      items.ItemID(args[0]),
					Name:        f.name,
					Description: f.description,
					ImageURL:    f.imageURLValue(flags),
					AsBait:      lootValue(flags, "bait", f.bait),
					AsChest:     lootValue(flags, "chest", f.chest),
				},
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"item":    output.Item,
				"created": output.Created,
			})
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [item-id]",
		Short: "Delete an item; deleting a missing item is not an error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := a.service.DeleteItem(cmd.Context(), &item.DeleteItemInput{
				ItemID: items.ItemID(args[0]),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"itemId":  args[0],
				"deleted": output.Deleted,
			})
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the container in its persisted form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := a.service.ExportItems(cmd.Context(), &item.ExportItemsInput{})
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), output.Data+"\n")
			return err
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the container with a saved document, migrating old records",
		Long:  `Read a saved items document from file ("-" for stdin) and persist it in the current schema.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			output, err := a.service.ImportItems(cmd.Context(), &item.ImportItemsInput{Data: string(data)})
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"count":    output.Count,
				"migrated": output.Migrated,
			})
		},
	}
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read %s", name)
	}
	return data, nil
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the persisted container loads and count records awaiting migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := a.service.CheckItems(cmd.Context(), &item.CheckItemsInput{})
			if err != nil {
				return err
			}

			pending := make(map[string]int, len(output.Pending))
			for version, count := range output.Pending {
				pending["v"+strconv.Itoa(int(version))] = count
			}
			return printJSON(cmd, map[string]interface{}{
				"found":   output.Found,
				"total":   output.Total,
				"pending": pending,
			})
		},
	}
}
